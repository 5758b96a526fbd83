//go:build linux

package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestCurrentMatchesUname(t *testing.T) {
	var uts unix.Utsname
	require.NoError(t, unix.Uname(&uts))

	rec, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "Linux", rec.Sysname)

	b, _ := rec.MarshalBinary()
	// The encoded record is byte-for-byte what the kernel fills in.
	assert.Equal(t, uts.Sysname[:], b[0:FieldLen])
	assert.Equal(t, uts.Nodename[:], b[FieldLen:2*FieldLen])
	assert.Equal(t, uts.Machine[:], b[4*FieldLen:5*FieldLen])
}

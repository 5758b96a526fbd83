package ident

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Record{
	Sysname:    "Linux",
	Nodename:   "node01",
	Release:    "6.1.0-fame",
	Version:    "#1 SMP PREEMPT_DYNAMIC",
	Machine:    "x86_64",
	Domainname: "(none)",
}

func TestMarshalLayout(t *testing.T) {
	b, err := sample.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, RecordSize)

	for i, f := range sample.Fields() {
		slot := b[i*FieldLen : (i+1)*FieldLen]
		n := bytes.IndexByte(slot, 0)
		require.GreaterOrEqual(t, n, 0, "field %s is not terminated", f.Name)
		assert.Equal(t, f.Value, string(slot[:n]))
		assert.Equal(t, make([]byte, FieldLen-n), slot[n:], "field %s is not zero padded", f.Name)
	}
}

func TestMarshalTruncatesLongFields(t *testing.T) {
	rec := sample
	rec.Version = strings.Repeat("v", 100)

	b, _ := rec.MarshalBinary()
	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("v", FieldLen-1), got.Version)
	assert.Equal(t, sample.Machine, got.Machine)
}

func TestMarshalToShortBuffer(t *testing.T) {
	b := make([]byte, 256)
	n := sample.MarshalTo(b)
	assert.Equal(t, 256, n)
	assert.Equal(t, "Linux", string(b[:5]))
	assert.Equal(t, "node01", string(b[FieldLen:FieldLen+6]))
}

func TestMarshalOverwritesPreviousContent(t *testing.T) {
	b := bytes.Repeat([]byte{0xff}, RecordSize)
	sample.MarshalTo(b)
	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestParseRoundTrip(t *testing.T) {
	var got Record
	b, _ := sample.MarshalBinary()
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, sample, got)
}

func TestParseWithoutDomainname(t *testing.T) {
	b, _ := sample.MarshalBinary()
	got, err := Parse(b[:MinRecordSize])
	require.NoError(t, err)
	assert.Empty(t, got.Domainname)
	assert.Equal(t, sample.Machine, got.Machine)
}

func TestParseShort(t *testing.T) {
	_, err := Parse(make([]byte, 256))
	assert.True(t, errors.Is(err, ErrShortRecord))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Linux node01 6.1.0-fame #1 SMP PREEMPT_DYNAMIC x86_64", sample.String())
	assert.True(t, Record{}.IsZero())
	assert.False(t, sample.IsZero())
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func(context.Context) (Record, error) { return sample, nil })
	got, err := src.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestCurrent(t *testing.T) {
	rec, err := Current()
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Sysname)
	assert.NotEmpty(t, rec.Release)
	assert.NotEmpty(t, rec.Machine)

	viaSource, err := System.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rec.Sysname, viaSource.Sysname)
}

//go:build linux

package shm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RegionTestSuite struct {
	suite.Suite
	path string
}

func (s *RegionTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "region")
	s.Require().NoError(os.WriteFile(s.path, make([]byte, 1024), 0600))
}

func (s *RegionTestSuite) TestOpenWriteClose() {
	r, err := Open(context.Background(), OpenOptions{Path: s.path, Size: 256})
	s.Require().NoError(err)
	s.Equal(256, r.Size())
	s.Equal(s.path, r.Path())
	s.Len(r.Bytes(), 256)

	copy(r.Bytes(), "shared")
	s.Require().NoError(r.Close())
	s.ErrorIs(r.Close(), ErrClosed)

	got, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("shared", string(got[:6]))
}

func (s *RegionTestSuite) TestExtentIsPageSized() {
	r, err := Open(context.Background(), OpenOptions{Path: s.path, Size: 256})
	s.Require().NoError(err)
	defer r.Close()
	s.Len(r.Extent(), os.Getpagesize())
}

func (s *RegionTestSuite) TestInvalidSize() {
	_, err := Open(context.Background(), OpenOptions{Path: s.path})
	s.ErrorIs(err, ErrInvalidSize)
}

func (s *RegionTestSuite) TestOpenErrorNamesStep() {
	_, err := Open(context.Background(), OpenOptions{Path: s.path + ".missing", Size: 256})
	var opErr *OpError
	s.Require().True(errors.As(err, &opErr))
	s.Equal("open", opErr.Op)

	_, err = Open(context.Background(), OpenOptions{Path: s.path, Size: 4096})
	s.Require().True(errors.As(err, &opErr))
	s.Equal("mmap", opErr.Op)
	s.ErrorIs(err, ErrShortFile)
}

func TestRegionTestSuite(t *testing.T) {
	suite.Run(t, new(RegionTestSuite))
}

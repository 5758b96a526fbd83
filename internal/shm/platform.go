// Package shm contains platform-specific helpers for mapping the fabric emulation device.
package shm

import (
	"errors"
	"os"
	"unsafe"
)

var (
	// ErrUnsupported is returned on platforms without mmap support.
	ErrUnsupported = errors.New("shared mappings are not supported on this platform")
	// ErrShortFile is returned when a regular file is smaller than the requested mapping.
	ErrShortFile = errors.New("file is smaller than the mapping")
)

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Path string
	Addr []byte
	fd   int
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Path     string
	Size     int
	ReadOnly bool
	// Create creates the file and grows it to Size when it is missing or short.
	Create bool
}

// OpError records the step that failed and the path it failed on.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// Extent returns the mapping extended to the page boundary. The kernel maps
// whole pages, so the bytes past len(Addr) up to the end of the last page are
// addressable for as long as the region is mapped.
func (r *MappedRegion) Extent() []byte {
	if r == nil || len(r.Addr) == 0 {
		return nil
	}
	page := os.Getpagesize()
	n := (len(r.Addr) + page - 1) / page * page
	return unsafe.Slice(unsafe.SliceData(r.Addr), n)
}

// Function implementations are provided in platform-specific files (platform_unix.go, platform_other.go).

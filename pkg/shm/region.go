package shm

import (
	"context"
	"errors"
	"sync"

	internalshm "github.com/FabricAttachedMemory/Emulation/internal/shm"
)

var (
	// ErrInvalidSize is returned for non-positive mapping sizes.
	ErrInvalidSize = errors.New("shm: invalid region size")
	// ErrClosed is returned when a closed region is used.
	ErrClosed = errors.New("shm: region closed")

	ErrUnsupported = internalshm.ErrUnsupported
	ErrShortFile   = internalshm.ErrShortFile
)

// OpError is the error returned when a mapping step fails. Op names the step:
// "open", "stat", "truncate", "mmap", "munmap" or "close".
type OpError = internalshm.OpError

// Region is a shared mapping of the start of a file.
type Region struct {
	mu     sync.Mutex
	region *internalshm.MappedRegion
	size   int
}

// OpenOptions defines options for opening a shared region.
type OpenOptions struct {
	// Path is the file or device to map.
	Path string
	// Size is the number of bytes mapped from offset zero.
	Size int
	// ReadOnly maps the region without write access.
	ReadOnly bool
	// Create creates the file and grows it to Size if needed.
	Create bool
}

// Open maps the first opts.Size bytes of opts.Path.
func Open(ctx context.Context, opts OpenOptions) (*Region, error) {
	if opts.Size <= 0 {
		return nil, ErrInvalidSize
	}
	region, err := internalshm.MapRegion(ctx, internalshm.MapOptions{
		Path:     opts.Path,
		Size:     opts.Size,
		ReadOnly: opts.ReadOnly,
		Create:   opts.Create,
	})
	if err != nil {
		return nil, err
	}
	return &Region{region: region, size: opts.Size}, nil
}

// Path returns the mapped file's path.
func (r *Region) Path() string { return r.region.Path }

// Size returns the requested mapping size.
func (r *Region) Size() int { return r.size }

// Bytes returns the mapped bytes. The slice is invalid after Close.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.region.Addr
}

// Extent returns the mapping extended to the end of its last page.
// The slice is invalid after Close.
func (r *Region) Extent() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.region.Extent()
}

// Close unmaps the region and releases its descriptor. Closing twice returns ErrClosed.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.region.Addr == nil {
		return ErrClosed
	}
	return internalshm.UnmapRegion(context.Background(), r.region)
}

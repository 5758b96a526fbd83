//go:build !unix

package shm

import (
	"context"
)

// MapRegion is not available on this platform.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	return nil, &OpError{Op: "mmap", Path: opts.Path, Err: ErrUnsupported}
}

// UnmapRegion is not available on this platform.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	return ErrUnsupported
}

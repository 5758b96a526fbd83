//go:build unix

package shm

import (
	"context"
	"errors"

	"golang.org/x/sys/unix"
)

// MapRegion opens opts.Path and maps its first opts.Size bytes as a shared mapping.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flags := unix.O_RDWR
	prot := unix.PROT_READ | unix.PROT_WRITE
	if opts.ReadOnly {
		flags = unix.O_RDONLY
		prot = unix.PROT_READ
	}
	if opts.Create {
		flags |= unix.O_CREAT
	}
	fd, err := unix.Open(opts.Path, flags|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, &OpError{Op: "open", Path: opts.Path, Err: err}
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return nil, &OpError{Op: "stat", Path: opts.Path, Err: err}
	}
	// Devices report a zero size; only regular files can be too short.
	if st.Mode&unix.S_IFMT == unix.S_IFREG && st.Size < int64(opts.Size) {
		if !opts.Create {
			_ = unix.Close(fd)
			return nil, &OpError{Op: "mmap", Path: opts.Path, Err: ErrShortFile}
		}
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			_ = unix.Close(fd)
			return nil, &OpError{Op: "truncate", Path: opts.Path, Err: err}
		}
	}

	addr, err := unix.Mmap(fd, 0, opts.Size, prot, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, &OpError{Op: "mmap", Path: opts.Path, Err: err}
	}
	return &MappedRegion{
		Path: opts.Path,
		Addr: addr,
		fd:   fd,
	}, nil
}

// UnmapRegion unmaps the region and closes its descriptor.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	var errs []error
	if err := unix.Munmap(region.Addr); err != nil {
		errs = append(errs, &OpError{Op: "munmap", Path: region.Path, Err: err})
	}
	region.Addr = nil
	if err := unix.Close(region.fd); err != nil {
		errs = append(errs, &OpError{Op: "close", Path: region.Path, Err: err})
	}
	region.fd = -1
	return errors.Join(errs...)
}

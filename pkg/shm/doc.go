// Package shm maps a file or emulation device as a shared memory region.
//
// Writes to a Region are visible through the underlying file and to every
// other process mapping the same file, subject to the platform's rules.
//
// Example usage:
//
//	r, err := shm.Open(ctx, shm.OpenOptions{Path: "/mnt/fabric_emulation", Size: 256})
//	if err != nil {
//	  // ...
//	}
//	copy(r.Bytes(), payload)
//	err = r.Close()
//
// Platform-specific helpers are in internal/shm.
package shm

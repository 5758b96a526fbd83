//go:build linux

package ident

import (
	"golang.org/x/sys/unix"
)

// Current returns the identification record of the running kernel.
func Current() (Record, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Record{}, err
	}
	return Record{
		Sysname:    unix.ByteSliceToString(uts.Sysname[:]),
		Nodename:   unix.ByteSliceToString(uts.Nodename[:]),
		Release:    unix.ByteSliceToString(uts.Release[:]),
		Version:    unix.ByteSliceToString(uts.Version[:]),
		Machine:    unix.ByteSliceToString(uts.Machine[:]),
		Domainname: unix.ByteSliceToString(uts.Domainname[:]),
	}, nil
}

//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package ident

import (
	"github.com/shirou/gopsutil/v3/host"
)

// Current builds the record from gopsutil where uname(2) is unavailable.
func Current() (Record, error) {
	info, err := host.Info()
	if err != nil {
		return Record{}, err
	}
	return Record{
		Sysname:  info.OS,
		Nodename: info.Hostname,
		Release:  info.KernelVersion,
		Version:  info.PlatformVersion,
		Machine:  info.KernelArch,
	}, nil
}

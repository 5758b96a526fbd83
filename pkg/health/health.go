// Package health exposes liveness and readiness checks for the fabric
// emulation device.
package health

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/FabricAttachedMemory/Emulation/pkg/shm"
)

const (
	// MaxGoroutines is the liveness threshold.
	MaxGoroutines = 100
	checkTimeout  = 2 * time.Second
)

// Config selects what the health handler checks.
type Config struct {
	// Device is mapped and released by the readiness check.
	Device string
	// Size is the mapping length the device must support.
	Size int
	// HostPath, when set, adds a free-space check on its directory.
	HostPath string
	// Registry exports check results as gauges when set.
	Registry prometheus.Registerer
	// Namespace prefixes the exported gauges.
	Namespace string
}

// NewHandler builds a healthcheck.Handler serving /live and /ready.
func NewHandler(cfg Config) healthcheck.Handler {
	var h healthcheck.Handler
	if cfg.Registry != nil {
		h = healthcheck.NewMetricsHandler(cfg.Registry, cfg.Namespace)
	} else {
		h = healthcheck.NewHandler()
	}
	h.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(MaxGoroutines))
	h.AddReadinessCheck("fabric-device", healthcheck.Timeout(DeviceCheck(cfg.Device, cfg.Size), checkTimeout))
	if cfg.HostPath != "" {
		h.AddReadinessCheck("shm-capacity", CapacityCheck(cfg.HostPath, uint64(cfg.Size)))
	}
	return h
}

// DeviceCheck returns a check that maps size bytes of path and releases them.
func DeviceCheck(path string, size int) healthcheck.Check {
	return func() error {
		r, err := shm.Open(context.Background(), shm.OpenOptions{Path: path, Size: size})
		if err != nil {
			return err
		}
		return r.Close()
	}
}

// CapacityCheck returns a check that passes while the backing file at path
// exists or its filesystem has room for size more bytes.
func CapacityCheck(path string, size uint64) healthcheck.Check {
	return func() error {
		if pathExists(path) {
			return nil
		}
		return CanCreate(filepath.Dir(path), size)
	}
}

// CanCreate reports whether dir has at least size bytes free.
func CanCreate(dir string, size uint64) error {
	usage, err := disk.Usage(dir)
	if err != nil {
		return err
	}
	if usage.Free < size {
		return fmt.Errorf("%s: %d bytes free, %d needed", dir, usage.Free, size)
	}
	return nil
}

// Package config loads hello-fabric settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/FabricAttachedMemory/Emulation/internal/logging"
	"github.com/FabricAttachedMemory/Emulation/pkg/fabric"
)

// Prefix is prepended to every environment variable name.
const Prefix = "FABRIC"

// DefaultListenAddr is where serve listens unless configured.
const DefaultListenAddr = ":8086"

// Config holds all application configuration. Unset variables keep the
// values from Default.
type Config struct {
	// Device is the emulation device opened inside the VM.
	Device string `envconfig:"DEVICE"`
	// HostPath is the host-side backing file of the device.
	HostPath string `envconfig:"HOST_PATH"`
	// RegionSize is the number of bytes mapped from the device.
	RegionSize int `envconfig:"REGION_SIZE"`
	// Create makes and sizes Device when it is missing.
	Create bool `envconfig:"CREATE"`

	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogColor        bool   `envconfig:"LOG_COLOR"`
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
	ListenAddr      string `envconfig:"LISTEN_ADDR"`
}

// Load loads configuration from FABRIC_* environment variables on top of Default.
func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Device:     fabric.DefaultDevice,
		HostPath:   fabric.DefaultHostPath,
		RegionSize: fabric.RegionSize,
		LogLevel:   logging.DefaultLevel,
		ListenAddr: DefaultListenAddr,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Device == "" {
		return errors.New("device path must not be empty")
	}
	if c.HostPath == "" {
		return errors.New("host path must not be empty")
	}
	if c.RegionSize <= 0 {
		return fmt.Errorf("region size must be greater than 0, got %d", c.RegionSize)
	}
	return nil
}

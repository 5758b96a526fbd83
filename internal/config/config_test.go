package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabricAttachedMemory/Emulation/pkg/fabric"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FABRIC_DEVICE", "/tmp/fabric")
	t.Setenv("FABRIC_REGION_SIZE", "4096")
	t.Setenv("FABRIC_CREATE", "true")
	t.Setenv("FABRIC_LOG_LEVEL", "debug")
	t.Setenv("FABRIC_LOG_COLOR", "true")
	t.Setenv("FABRIC_METRICS_TEXTFILE", "/var/lib/node_exporter/fabric.prom")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fabric", cfg.Device)
	assert.Equal(t, fabric.DefaultHostPath, cfg.HostPath)
	assert.Equal(t, 4096, cfg.RegionSize)
	assert.True(t, cfg.Create)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogColor)
	assert.Equal(t, "/var/lib/node_exporter/fabric.prom", cfg.MetricsTextfile)
}

func TestDefaultsFollowFabric(t *testing.T) {
	cfg := Default()
	assert.Equal(t, fabric.DefaultDevice, cfg.Device)
	assert.Equal(t, fabric.DefaultHostPath, cfg.HostPath)
	assert.Equal(t, fabric.RegionSize, cfg.RegionSize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LogColor)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("FABRIC_REGION_SIZE", "lots")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.RegionSize = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Device = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HostPath = ""
	assert.Error(t, cfg.Validate())
}

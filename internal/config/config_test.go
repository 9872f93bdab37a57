package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/currentctl/internal/config"
	"codeberg.org/mutker/currentctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"currentctl"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	setArgs(t)
	t.Setenv("CURRENTCTL_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.CalcSet)
	assert.False(t, cfg.BLE)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Empty(t, cfg.Port)
	assert.Empty(t, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.InDelta(t, 12, cfg.ADCBits, 0)
	assert.InDelta(t, 2, cfg.ShuntMilliohms, 0)
	assert.InDelta(t, 0.2, cfg.RefVoltage, 0)
	assert.InDelta(t, 100, cfg.Gain, 0)
	assert.InDelta(t, 3300, cfg.UpperResistance, 0)
	assert.InDelta(t, 5600, cfg.LowerResistance, 0)
	assert.InDelta(t, 2.048, cfg.FullScaleVoltage, 0)
	assert.False(t, cfg.FourChannel)
}

func TestLoadConfigFile(t *testing.T) {
	setArgs(t)

	configContent := []byte(`
baud = 9600
interface = "/dev/ttyUSB0"
output = "/var/log/currentctl"
verbose = true
shunt = 10
four-channel = true
`)
	configPath := filepath.Join(t.TempDir(), "currentctl.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))
	t.Setenv("CURRENTCTL_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9600, cfg.Baud)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, "/var/log/currentctl", cfg.Output)
	assert.True(t, cfg.Verbose)
	assert.InDelta(t, 10, cfg.ShuntMilliohms, 0)
	assert.True(t, cfg.FourChannel)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	setArgs(t, "--baud", "57600")

	configContent := []byte(`
baud = 9600
`)
	configPath := filepath.Join(t.TempDir(), "currentctl.toml")
	require.NoError(t, os.WriteFile(configPath, configContent, 0o600))
	t.Setenv("CURRENTCTL_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 57600, cfg.Baud)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	setArgs(t)

	configPath := filepath.Join(t.TempDir(), "currentctl.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("this is not TOML"), 0o600))
	t.Setenv("CURRENTCTL_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestCalcFlag(t *testing.T) {
	setArgs(t, "-c", "1000")
	t.Setenv("CURRENTCTL_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.CalcSet)
	assert.InDelta(t, 1000, cfg.Calc, 0)
}

func TestInvalidBaud(t *testing.T) {
	setArgs(t, "--baud", "0")
	t.Setenv("CURRENTCTL_CONFIG", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}

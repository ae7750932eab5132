package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.TPS)
	assert.True(t, cfg.HUD)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "Rhythm Medley", cfg.Window.Title)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, 500*time.Millisecond, cfg.Marker.TTL)
	assert.Empty(t, cfg.Assets.Background)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.Equal(t, 250*time.Millisecond, cfg.Headless.TapEvery)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Marker.TTL)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"logLevel": "debug",
		"hud": false,
		"window": { "width": 1280, "title": "Test" },
		"marker": { "ttl": "1s" },
		"assets": { "background": "bg.png" },
		"headless": { "ticks": 120 }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.HUD)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, time.Second, cfg.Marker.TTL)
	assert.Equal(t, "bg.png", cfg.Assets.Background)
	assert.Equal(t, uint64(120), cfg.Headless.Ticks)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{ "logLevel": `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidTTL(t *testing.T) {
	path := writeConfig(t, `{ "marker": { "ttl": "0s" } }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	path = writeConfig(t, `{ "marker": { "ttl": "-5ms" } }`)
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestLoad_NumericTTLRejected(t *testing.T) {
	path := writeConfig(t, `{ "marker": { "ttl": 500 } }`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	path = writeConfig(t, `{ "marker": { "ttl": "1ms" } }`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MinTTL, cfg.Marker.TTL)
}

func TestLoad_InvalidWindow(t *testing.T) {
	path := writeConfig(t, `{ "window": { "height": 0 } }`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RHYTHM_MARKER_TTL", "750ms")
	t.Setenv("RHYTHM_LOGLEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Marker.TTL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidateFillsRates(t *testing.T) {
	cfg := Default()
	cfg.TPS = 0
	cfg.Headless.Hz = 0
	cfg.Headless.TapEvery = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.Equal(t, 250*time.Millisecond, cfg.Headless.TapEvery)
}

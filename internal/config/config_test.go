package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Me", cfg.OwnerLabel)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimeLayout)
	assert.Equal(t, "windows-1251", cfg.HeaderCharset)

	ro := cfg.RenderOptions()
	assert.Equal(t, time.UTC, ro.Location)
	assert.Equal(t, "Me", ro.OwnerLabel)

	po := cfg.ParseOptions()
	assert.Equal(t, "windows-1251", po.HeaderCharset)
	assert.False(t, po.TraceCursor)
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("owner_label: Я\nlogging:\n  level: debug\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Я", cfg.OwnerLabel)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimeLayout, "unset fields keep defaults")
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("owner_label: [unterminated"), 0o644))
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("owner_label: \"\"\nheader_charset: utf-7\nlogging:\n  format: xml\n"), 0o644))
	_, err = LoadConfig(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner_label")
	assert.Contains(t, err.Error(), "utf-7")
	assert.Contains(t, err.Error(), "xml")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/out\n"), 0o644))

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestResolveDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.TimeZone = "Europe/Moscow"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	loc, err := loaded.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoggerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.Dir = "/var/log/qhf"
	opts := cfg.LoggerOptions()
	assert.True(t, opts.Enabled)
	assert.True(t, opts.JSON)
	assert.Equal(t, "/var/log/qhf", opts.LogDir)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/home/tester", "Downloads", "full_stack_dev_tools"), cfg.Download.Dir)
	assert.Equal(t, 30*time.Second, cfg.Download.Timeout)
	assert.Equal(t, "curl/8", cfg.Download.UserAgent)
	assert.True(t, cfg.BrowserEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFile)

	cfg := DefaultConfig()
	cfg.Download.Dir = "/srv/csv"
	cfg.Download.Timeout = 5 * time.Second
	off := false
	cfg.Download.Browser = &off

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/csv", loaded.Download.Dir)
	assert.Equal(t, 5*time.Second, loaded.Download.Timeout)
	assert.False(t, loaded.BrowserEnabled())
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("download:\n  dir: /data\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.Download.Dir)
	assert.Equal(t, DefaultTimeout, cfg.Download.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.Download.UserAgent)
	assert.True(t, cfg.BrowserEnabled())
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(bad, []byte("download: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, cfg.Download.UserAgent)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Download.Dir = " " }},
		{"zero timeout", func(c *Config) { c.Download.Timeout = 0 }},
		{"empty user agent", func(c *Config) { c.Download.UserAgent = "" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", DefaultHomeDir), GetHome())
	assert.Equal(t, filepath.Join("/home/tester", DefaultHomeDir, DefaultConfigFile), DefaultPath())
}

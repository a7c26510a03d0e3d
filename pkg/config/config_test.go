package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.BindAddress)
	assert.Equal(t, 8050, cfg.Port)
	assert.Equal(t, "centroid.db", cfg.DatabaseURL)
	assert.Equal(t, "", cfg.DatasetsDir)
	assert.False(t, cfg.WatchDatasets)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "127.0.0.1:8050", cfg.Addr())
	assert.Equal(t, "default", cfg.Source("port"))
	assert.Equal(t, "", cfg.ConfigFilePath())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "centroid.yml")
	content := "port: 9090\nlog_level: debug\ndatasets_dir: /data/csv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/data/csv", cfg.DatasetsDir)
	assert.Equal(t, "file:"+path, cfg.Source("port"))
	assert.Equal(t, "file:"+path, cfg.Source("log_level"))
	assert.Equal(t, "default", cfg.Source("bind_address"))
	assert.Equal(t, path, cfg.ConfigFilePath())
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "centroid.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not an int"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "centroid.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\n"), 0o644))

	t.Setenv("CENTROID_PORT", "7070")
	t.Setenv("CENTROID_WATCH_DATASETS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "env:CENTROID_PORT", cfg.Source("port"))
	assert.True(t, cfg.WatchDatasets)
	assert.Equal(t, "env:CENTROID_WATCH_DATASETS", cfg.Source("watch_datasets"))
}

func TestEnvBadInteger(t *testing.T) {
	t.Setenv("CENTROID_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CENTROID_PORT")
}

func TestConfigFileFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.yml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 25\n"), 0o644))

	t.Setenv("CENTROID_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, path, cfg.ConfigFilePath())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad port", func(c *Config) { c.Port = 0 }, false},
		{"big port", func(c *Config) { c.Port = 70000 }, false},
		{"bad page size", func(c *Config) { c.PageSize = 0 }, false},
		{"empty database url", func(c *Config) { c.DatabaseURL = "" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, false},
		{"case insensitive level", func(c *Config) { c.LogLevel = "DEBUG" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newDefault()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAttributesAndFormats(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	attrs := cfg.Attributes()
	require.Len(t, attrs, 8)
	assert.Equal(t, "bind_address", attrs[0].Name)
	assert.Equal(t, "127.0.0.1", attrs[0].Value)

	text := cfg.FormatText()
	assert.Contains(t, text, "bind_address")
	assert.Contains(t, text, "SOURCE")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "attributes")
}

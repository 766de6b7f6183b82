package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every implicit location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SIFTLY_CONFIG", "")
	t.Setenv("SIFTLY_LOG_LEVEL", "")
	t.Setenv("SIFTLY_LOG_FILE", "")
	t.Setenv("SIFTLY_HISTORY_PATH", "")
	t.Setenv("SIFTLY_ZOOM_FACTOR", "")
	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.2, cfg.Viewport.ZoomFactor)
	assert.Equal(t, []rune{',', ';', '\t', '|'}, cfg.DelimiterRunes())
	assert.Equal(t, filepath.Join(dir, "siftly-series", "history.db"), cfg.History.Path)
	assert.True(t, cfg.History.Enabled)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
ingest:
  delimiters: [";", "|"]
  datetime_keywords: [date, epoch]
viewport:
  zoom_factor: 1.5
transform:
  rolling_window: 3
log:
  level: debug
  format: json
history:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []rune{';', '|'}, cfg.DelimiterRunes())
	assert.Equal(t, []string{"date", "epoch"}, cfg.Ingest.DatetimeKeywords)
	assert.Equal(t, 1.5, cfg.Viewport.ZoomFactor)
	assert.Equal(t, 4, cfg.Viewport.PanStepCells, "unset keys keep their defaults")
	assert.Equal(t, 3, cfg.Transform.RollingWindow)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_ImplicitFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "siftly-series"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "siftly-series", "config.yaml"), []byte("viewport:\n  zoom_factor: 2\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Viewport.ZoomFactor)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv("SIFTLY_LOG_LEVEL", "debug")
	t.Setenv("SIFTLY_LOG_FILE", "/tmp/sf.log")
	t.Setenv("SIFTLY_HISTORY_PATH", "/tmp/h.db")
	t.Setenv("SIFTLY_ZOOM_FACTOR", "1.25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/sf.log", cfg.Log.File)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
	assert.Equal(t, 1.25, cfg.Viewport.ZoomFactor)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = Load(writeConfig(t, "viewport: [1, 2"))
	assert.ErrorContains(t, err, "parse config file")

	t.Setenv("SIFTLY_ZOOM_FACTOR", "fast")
	_, err = Load("")
	assert.ErrorContains(t, err, "SIFTLY_ZOOM_FACTOR")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zoom factor one", func(c *Config) { c.Viewport.ZoomFactor = 1 }, "zoom_factor"},
		{"zoom factor below one", func(c *Config) { c.Viewport.ZoomFactor = 0.8 }, "zoom_factor"},
		{"pan step", func(c *Config) { c.Viewport.PanStepCells = 0 }, "pan_step_cells"},
		{"window", func(c *Config) { c.Transform.RollingWindow = -1 }, "rolling_window"},
		{"no delimiters", func(c *Config) { c.Ingest.Delimiters = nil }, "delimiters"},
		{"long delimiter", func(c *Config) { c.Ingest.Delimiters = []string{"::"} }, "single character"},
		{"negative sample", func(c *Config) { c.Ingest.SampleBytes = -1 }, "sample_bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	assert.NoError(t, Default().Validate())
}

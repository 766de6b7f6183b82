package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds the viewer's tunables.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Transform TransformConfig `yaml:"transform"`
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
}

type IngestConfig struct {
	SampleBytes      int      `yaml:"sample_bytes"`
	Delimiters       []string `yaml:"delimiters"`
	DatetimeKeywords []string `yaml:"datetime_keywords"`
}

type ViewportConfig struct {
	ZoomFactor   float64 `yaml:"zoom_factor"`
	PanStepCells int     `yaml:"pan_step_cells"`
}

type TransformConfig struct {
	RollingWindow int `yaml:"rolling_window"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			SampleBytes:      2048,
			Delimiters:       []string{",", ";", "\t", "|"},
			DatetimeKeywords: []string{"date", "time", "timestamp", "datetime"},
		},
		Viewport: ViewportConfig{
			ZoomFactor:   1.2,
			PanStepCells: 4,
		},
		Transform: TransformConfig{
			RollingWindow: 7,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides. An explicit path must exist; the implicit locations
// are skipped when missing.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("SIFTLY_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		err := loadFromFile(path, &cfg)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if level := os.Getenv("SIFTLY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("SIFTLY_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if p := os.Getenv("SIFTLY_HISTORY_PATH"); p != "" {
		cfg.History.Path = p
	}
	if z := os.Getenv("SIFTLY_ZOOM_FACTOR"); z != "" {
		f, err := strconv.ParseFloat(z, 64)
		if err != nil {
			return fmt.Errorf("invalid SIFTLY_ZOOM_FACTOR: %w", err)
		}
		cfg.Viewport.ZoomFactor = f
	}
	return nil
}

// Validate rejects settings the viewer cannot work with.
func (c Config) Validate() error {
	if !(c.Viewport.ZoomFactor > 1) {
		return fmt.Errorf("viewport.zoom_factor must be greater than 1, got %g", c.Viewport.ZoomFactor)
	}
	if c.Viewport.PanStepCells <= 0 {
		return fmt.Errorf("viewport.pan_step_cells must be positive, got %d", c.Viewport.PanStepCells)
	}
	if c.Transform.RollingWindow <= 0 {
		return fmt.Errorf("transform.rolling_window must be positive, got %d", c.Transform.RollingWindow)
	}
	if c.Ingest.SampleBytes < 0 {
		return fmt.Errorf("ingest.sample_bytes must not be negative, got %d", c.Ingest.SampleBytes)
	}
	if len(c.Ingest.Delimiters) == 0 {
		return errors.New("ingest.delimiters must not be empty")
	}
	for _, d := range c.Ingest.Delimiters {
		if utf8.RuneCountInString(d) != 1 {
			return fmt.Errorf("ingest.delimiters: %q is not a single character", d)
		}
	}
	return nil
}

// DelimiterRunes returns the configured delimiter candidates.
func (c Config) DelimiterRunes() []rune {
	out := make([]rune, 0, len(c.Ingest.Delimiters))
	for _, d := range c.Ingest.Delimiters {
		r, _ := utf8.DecodeRuneInString(d)
		out = append(out, r)
	}
	return out
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "siftly-series")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "siftly-series")
	}
	return ""
}

func defaultConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

func defaultHistoryPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir  string        `yaml:"data_dir"`
	BasePlan string        `yaml:"base_plan"`
	Archive  ArchiveConfig `yaml:"archive"`
	Log      LogConfig     `yaml:"log"`
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		DataDir: ".",
		Archive: ArchiveConfig{Enabled: true, Path: "runbuddy.db"},
		Log:     LogConfig{Level: "info", File: "runbuddy.log"},
	}
}

// ArchivePath resolves the archive path against the data directory.
func (c *Config) ArchivePath() string {
	return c.resolve(c.Archive.Path)
}

// LogPath resolves the log file path against the data directory.
func (c *Config) LogPath() string {
	return c.resolve(c.Log.File)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// SlogLevel maps log.level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix RUNBUDDY_:
//
//	RUNBUDDY_DATA_DIR, RUNBUDDY_BASE_PLAN,
//	RUNBUDDY_ARCHIVE_ENABLED, RUNBUDDY_ARCHIVE_PATH,
//	RUNBUDDY_LOG_LEVEL, RUNBUDDY_LOG_FILE
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNBUDDY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("RUNBUDDY_BASE_PLAN"); v != "" {
		cfg.BasePlan = v
	}
	if v := os.Getenv("RUNBUDDY_ARCHIVE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Archive.Enabled = enabled
		}
	}
	if v := os.Getenv("RUNBUDDY_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
	if v := os.Getenv("RUNBUDDY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RUNBUDDY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Archive.Enabled && c.Archive.Path == "" {
		return fmt.Errorf("archive.path is required when the archive is enabled")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

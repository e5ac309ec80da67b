package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/airwaves/internal/logger"
	"github.com/llehouerou/airwaves/internal/policy"
)

type Config struct {
	// Remote catalog/social service (play counts and likes are disabled
	// when url is empty)
	Catalog CatalogConfig `koanf:"catalog"`

	// Playback engine tuning
	Playback PlaybackConfig `koanf:"playback"`

	// Snapshot persistence
	Storage StorageConfig `koanf:"storage"`

	// User-facing block notices
	Messages MessagesConfig `koanf:"messages"`

	Log LogConfig `koanf:"log"`
}

// CatalogConfig holds the catalog service connection settings.
type CatalogConfig struct {
	URL     string        `koanf:"url" validate:"omitempty,url"` // e.g., "https://api.example.com"
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout" default:"10s" validate:"gt=0"`
}

// PlaybackConfig holds the engine timings and the starting volume.
type PlaybackConfig struct {
	PlayCountAfter  time.Duration `koanf:"play_count_after" default:"30s" validate:"gt=0"`
	RewindThreshold time.Duration `koanf:"rewind_threshold" default:"3s" validate:"gte=0"`
	AutosaveDelay   time.Duration `koanf:"autosave_delay" default:"1s" validate:"gt=0"`
	InitialVolume   float64       `koanf:"initial_volume" default:"1" validate:"gte=0,lte=1"`
}

// StorageConfig holds where snapshots are kept.
type StorageConfig struct {
	Path      string `koanf:"path"` // empty means the XDG data dir
	KeyPrefix string `koanf:"key_prefix" default:"playerState_" validate:"required"`
}

// MessagesConfig overrides the block notices. Empty fields keep the
// built-in text.
type MessagesConfig struct {
	Hidden        string `koanf:"hidden"`
	Suspended     string `koanf:"suspended"`
	AgeRestricted string `koanf:"age_restricted"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Output string `koanf:"output" default:"file" validate:"oneof=stdout stderr file"`
	Level  string `koanf:"level" default:"info" validate:"oneof=debug info warn warning error"`
	File   string `koanf:"file"` // empty means the XDG state dir
}

// Load reads the config files in priority order (last wins). A non-empty
// explicit path is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.Wrapf(err, "config file %s", explicit)
		}
		paths = append(paths, explicit)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}

	// Normalize catalog URL (remove trailing slash)
	cfg.Catalog.URL = strings.TrimSuffix(cfg.Catalog.URL, "/")
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Output = strings.ToLower(cfg.Log.Output)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/airwaves/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "airwaves", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasCatalog returns true if the catalog service is configured.
func (c *Config) HasCatalog() bool {
	return c.Catalog.URL != ""
}

// PolicyMessages returns the block notices with overrides applied.
func (c *Config) PolicyMessages() policy.Messages {
	m := policy.DefaultMessages()
	if c.Messages.Hidden != "" {
		m.Hidden = c.Messages.Hidden
	}
	if c.Messages.Suspended != "" {
		m.Suspended = c.Messages.Suspended
	}
	if c.Messages.AgeRestricted != "" {
		m.AgeRestricted = c.Messages.AgeRestricted
	}
	return m
}

// LoggerConfig returns the logger settings, resolving the default log file
// under the XDG state dir.
func (c *Config) LoggerConfig() (logger.Config, error) {
	lc := logger.Config{Output: c.Log.Output, Level: c.Log.Level, File: c.Log.File}
	if lc.Output == "file" && lc.File == "" {
		path, err := xdg.StateFile(filepath.Join("airwaves", "airwaves.log"))
		if err != nil {
			return lc, errors.Wrap(err, "resolve log file")
		}
		lc.File = path
	}
	return lc, nil
}

// Package config loads pypeek settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/pypeek/config.toml (falling back
// to ~/.config/pypeek/config.toml). A missing file yields [Default]. Values
// of the form ${VAR} in string fields are expanded from the environment, so
// credentials such as a Redis password need not be written to disk.
//
// Example file:
//
//	index_url = "https://pypi.org/pypi"
//	timeout   = "15s"
//	workers   = 8
//	pip       = "python3 -m pip"
//
//	[cache]
//	backend   = "redis"
//	ttl       = "6h"
//	redis_url = "redis://:${REDIS_PASSWORD}@localhost:6379/0"
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/integrations/pypi"
	"github.com/matzehuels/pypeek/pkg/integrations/pypistats"
	"github.com/matzehuels/pypeek/pkg/inventory"
	"github.com/matzehuels/pypeek/pkg/listing"
)

const appName = "pypeek"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Default values.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 24 * time.Hour
)

// Duration is a time.Duration decoded from a Go duration string ("90s", "6h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds all user-tunable settings.
type Config struct {
	IndexURL  string   `toml:"index_url"`
	SearchURL string   `toml:"search_url"`
	StatsURL  string   `toml:"stats_url"`
	Timeout   Duration `toml:"timeout"`
	Workers   int      `toml:"workers"`
	Pip       string   `toml:"pip"`
	Cache     Cache    `toml:"cache"`
}

// Cache configures the HTTP response cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IndexURL:  pypi.DefaultBaseURL,
		SearchURL: pypi.DefaultSearchURL,
		StatsURL:  pypistats.DefaultBaseURL,
		Timeout:   Duration{DefaultTimeout},
		Workers:   listing.DefaultWorkers,
		Pip:       inventory.DefaultCommand,
		Cache: Cache{
			Backend: BackendFile,
			TTL:     Duration{DefaultCacheTTL},
		},
	}
}

// Load reads the file at path over [Default]. An empty path means
// [DefaultPath]. A missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}

	cfg.expandEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks URLs, limits and the cache backend.
func (c *Config) Validate() error {
	for key, u := range map[string]string{
		"index_url":  c.IndexURL,
		"search_url": c.SearchURL,
		"stats_url":  c.StatsURL,
	} {
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", key)
		}
	}
	if c.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be at least 1, got %d", c.Workers)
	}
	if c.Pip == "" {
		return errors.New(errors.ErrCodeInvalidInput, "pip command must not be empty")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend != BackendNone && c.Cache.TTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must be positive, got %s (use backend = \"none\" to disable caching)", c.Cache.TTL)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/pypeek/config.toml, or "" when no
// home directory can be determined.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// Dir returns the pypeek configuration directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

func (c *Config) expandEnv() {
	for _, s := range []*string{&c.IndexURL, &c.SearchURL, &c.StatsURL, &c.Pip, &c.Cache.Dir, &c.Cache.RedisURL} {
		*s = expandEnv(*s)
	}
}

// expandEnv replaces ${VAR} with its value; unset variables become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// Package cli implements the pypeek command-line interface.
//
// pypeek searches the Python Package Index, looks up package metadata and
// download statistics, and cross-references them with the packages
// installed locally or listed in a manifest file.
//
// # Commands
//
//   - search: Query the PyPI search page
//   - info: Show metadata for name or name==version identifiers
//   - installed: List packages reported by pip, with pip's filters
//   - manifest: Show packages listed in requirements.txt, poetry.lock or pyproject.toml
//   - cache: Manage the HTTP response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// stored on the CLI and passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/config"
	"github.com/matzehuels/pypeek/pkg/integrations"
	"github.com/matzehuels/pypeek/pkg/integrations/pypi"
	"github.com/matzehuels/pypeek/pkg/integrations/pypistats"
	"github.com/matzehuels/pypeek/pkg/inventory"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pypeek"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Runner executes the package manager for "installed"; nil runs it via os/exec.
	Runner inventory.Runner

	configPath string
	verbose    bool
	noCache    bool
	refresh    bool

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// settings returns the loaded configuration, or defaults before loading.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Service Factories
// =============================================================================

// openCache returns the configured response cache. --no-cache and
// backend "none" both select the null cache.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	return c.openConfiguredCache(ctx)
}

// openConfiguredCache ignores --no-cache; "cache clear" uses it so the flag
// cannot hide the entries it is asked to remove.
func (c *CLI) openConfiguredCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.settings().Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to redis cache: %w", err)
		}
		return rc, nil
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache dir: %w", err)
	}
	return fc, nil
}

// indexClient creates the PyPI client for the configured endpoints.
func (c *CLI) indexClient(backend cache.Cache) *pypi.Client {
	cfg := c.settings()
	return pypi.NewClient(backend, cfg.Cache.TTL.Duration,
		pypi.WithBaseURL(cfg.IndexURL),
		pypi.WithSearchURL(cfg.SearchURL),
		pypi.WithHTTPClient(integrations.NewHTTPClient(cfg.Timeout.Duration)),
	)
}

// statsClient creates the pypistats client for the configured endpoint.
func (c *CLI) statsClient(backend cache.Cache) *pypistats.Client {
	cfg := c.settings()
	return pypistats.NewClient(backend, cfg.Cache.TTL.Duration,
		pypistats.WithBaseURL(cfg.StatsURL),
		pypistats.WithHTTPClient(integrations.NewHTTPClient(cfg.Timeout.Duration)),
	)
}

// inventoryReader creates the installed-package reader.
func (c *CLI) inventoryReader() *inventory.Reader {
	return inventory.NewReader(c.Runner, c.settings().Pip, c.Logger)
}

// =============================================================================
// Listing
// =============================================================================

// showRecords normalizes ids and writes the sorted listing to stdout.
func (c *CLI) showRecords(ctx context.Context, backend cache.Cache, ids []listing.Identifier, flags listingFlags) error {
	key, err := listing.ParseSortKey(flags.sort)
	if err != nil {
		return err
	}

	normalizer := listing.NewNormalizer(c.indexClient(backend), c.statsClient(backend), listing.Options{
		Workers: c.settings().Workers,
		Refresh: c.refresh,
		Logger:  c.Logger,
	})

	prog := newProgress(c.Logger)
	records, err := normalizer.Normalize(ctx, ids)
	if err != nil {
		return err
	}
	prog.done("%s resolved", pluralize(len(records), "package", "packages"))

	if flags.json {
		return listing.WriteJSON(stdout, records, key)
	}
	return listing.NewPresenter(stdout, recordStyles()).Display(records, key)
}

// withCache runs fn with an open cache and closes it afterwards.
func (c *CLI) withCache(ctx context.Context, fn func(cache.Cache) error) error {
	backend, err := c.openCache(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()
	return fn(backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pypeek/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

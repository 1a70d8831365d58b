// Package cli implements the licaudit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/licaudit/licaudit/pkg/buildinfo"
	"github.com/licaudit/licaudit/pkg/cache"
	"github.com/licaudit/licaudit/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "licaudit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Licaudit audits dependency licenses across ecosystems",
		Long:         `Licaudit scans pip and npm dependency trees, normalizes the license strings they declare, and aggregates them into a deterministic compliance report highlighting conflicts and unrecognized licenses.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newSnapshotCache selects the snapshot cache backend. Redis wins when
// configured; backend setup failures degrade to no caching rather than
// failing the scan.
func (c *CLI) newSnapshotCache(ctx context.Context, cfg CacheConfig, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if cfg.Redis != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// newStore opens the configured report store, or nil when persistence
// is not configured.
func (c *CLI) newStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	if cfg.MongoURI == "" {
		return nil, nil
	}
	return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/licaudit/).
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

// Package cli implements the flowcanvas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oyalabs/flowcanvas/pkg/buildinfo"
	"github.com/oyalabs/flowcanvas/pkg/cache"
	"github.com/oyalabs/flowcanvas/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowcanvas"

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
	Config *Config
}

// New creates a new CLI instance with a default logger and the user config
// loaded from disk (falling back to defaults when none exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowcanvas",
		Short:        "Flowcanvas edits and lays out durable workflow graphs",
		Long:         `Flowcanvas is a CLI tool for workflow documents behind the visual node editor: it validates graph structure, computes layered layouts, and edits nodes and connections from the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the user config unless disabled with --no-cache, and the logger is
// the one attached to ctx by the calling command.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, c.newKeyer(), loggerFromContext(ctx)), nil
}

// newKeyer scopes cache keys under the application name when the configured
// backend is a shared Redis instance, so entries from other tools on the
// same instance can never collide with ours.
func (c *CLI) newKeyer() cache.Keyer {
	if c.Config.Cache.Backend == CacheBackendRedis {
		return cache.NewScopedKeyer(nil, appName+":")
	}
	return nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
		if err != nil {
			loggerFromContext(ctx).Warn("redis cache unavailable, falling back to file cache", "addr", c.Config.Cache.RedisAddr, "err", err)
			return newFileCache()
		}
		return rc, nil
	default:
		return newFileCache()
	}
}

func newFileCache() (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowcanvas/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from the user config, so flags only
// need to override what the user asked for.
func (c *CLI) pipelineOptions(path string) pipeline.Options {
	opts := pipeline.Options{
		Path:         path,
		LayerSpacing: c.Config.LayerSpacing,
		NodeSpacing:  c.Config.NodeSpacing,
		Logger:       c.Logger,
	}
	opts.SetLayoutDefaults()
	opts.SetViewportDefaults()
	return opts
}

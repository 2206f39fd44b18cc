// Package cli implements the schemascope command-line interface.
//
// This package provides commands for listing the schema catalog, building
// property trees with per-level range filters, looking up documentation
// links, rendering trees as artifacts, browsing interactively, and serving
// the web UI. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - catalog: List the explorable schema types
//   - tree: Build and print a schema's property tree
//   - docs: Resolve a tree node to its documentation link
//   - render: Export a tree as SVG, PNG, DOT, or JSON
//   - explore: Browse the catalog and trees interactively
//   - serve: Run the HTTP API and web UI
//   - cache: Manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ionutms/schemascope/pkg/buildinfo"
	"github.com/ionutms/schemascope/pkg/cache"
	"github.com/ionutms/schemascope/pkg/config"
	"github.com/ionutms/schemascope/pkg/docs"
	"github.com/ionutms/schemascope/pkg/explorer"
)

// appName is the application name used for directories and display.
const appName = "schemascope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag value, resolved by Load at command
	// run time.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Schemascope explores chart schema property trees",
		Long:         `Schemascope is an interactive explorer for chart schema properties: it builds three-level property trees with per-level range filters and links every node to its documentation section.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration for a command invocation.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates an explorer runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*explorer.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := c.openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	return explorer.NewRunner(explorer.RunnerOptions{
		Cache:    store,
		Resolver: docs.NewResolver(cfg.Docs.BaseURL),
		Checker: docs.NewChecker(docs.CheckerOptions{
			Timeout: cfg.Docs.Timeout.Duration,
			Cache:   store,
			TTL:     cfg.Docs.CacheTTL.Duration,
		}),
		Logger: c.Logger,
	})
}

// openCache builds the configured cache, falling back to the local file
// cache under the XDG directory when the config selects the file backend
// without a directory.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendFile && cfg.Cache.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return cfg.OpenCache(ctx)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/schemascope/).
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

// Package cli implements the dashweave command-line interface.
//
// This package provides commands for building dashboard sites from
// declarative manifests, validating them, inspecting the tab tree, and
// serving a local preview. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Run the full collect, validate, render, emit pipeline
//   - collect: Load a manifest and report its items and datasets
//   - validate: Check a manifest without rendering anything
//   - inspect: Browse the materialized tab tree interactively
//   - preview: Serve the built site with rebuild-on-demand APIs
//   - cache: Manage the dataset and artifact cache
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

	"github.com/dashweave/dashweave/pkg/buildinfo"
	"github.com/dashweave/dashweave/pkg/cache"
	"github.com/dashweave/dashweave/pkg/httputil"
	"github.com/dashweave/dashweave/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "dashweave"

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
		Short:        "Dashweave builds markdown dashboards from declarative manifests",
		Long:         `Dashweave is a CLI tool for turning a declarative dashboard manifest into a paginated, tabbed markdown site with charts, tables, metrics, and diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.collectCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. A non-empty cacheURL
// selects the shared Redis backend instead of the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cacheURL string) (*pipeline.Runner, error) {
	store, keyer, err := newCache(ctx, noCache, cacheURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, cacheURL string) (cache.Cache, cache.Keyer, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil, nil
	case cacheURL != "":
		store, err := cache.NewRedisCache(ctx, cacheURL)
		if err != nil {
			return nil, nil, err
		}
		// The Redis keyspace is shared with whatever else runs on the
		// server, so keys are scoped under the application name.
		return store, sharedKeyer(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return store, nil, nil
}

// sharedKeyer scopes cache keys for backends shared across machines.
func sharedKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, appName+":")
}

// newHTTPCache creates the HTTP response cache used by remote dataset
// sources. A nil return disables HTTP caching.
func newHTTPCache(noCache bool) *httputil.Cache {
	if noCache {
		return nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "http"), cache.TTLHTTP)
	if err != nil {
		return nil
	}
	return hc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dashweave/).
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

// manifestArg resolves the optional manifest argument, defaulting to the
// current directory.
func manifestArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

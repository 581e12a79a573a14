// Package cli implements the chromatic command-line interface.
//
// # Commands
//
//   - compute: chromatic symmetric function of one graph, in any basis
//   - glue: every vertex gluing of two graphs, grouped by CSF
//   - plot: draw a graph as svg, png or dot
//   - trees: list free trees and check the tree conjecture
//   - catalog: record computed functions and find graphs sharing one
//   - fixtures: list the built-in graphs
//   - cache: manage the local table cache
//   - config: show or initialize the configuration file
//   - serve: run the HTTP API
//
// Graph arguments accept a fixture name ("bowtie", "path5", "k4"), graph6
// ("DvG"), the edge-list DSL ("4: 0-1-2-3-0"), a JSON object, a path to a
// JSON file, or "-" for JSON on stdin.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs compute, cache and catalog events.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/buildinfo"
	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/config"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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

	// ConfigPath overrides the config file location; empty means
	// config.Path().
	ConfigPath string

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

// EnableDebug switches to debug logging and logs observability events.
func (c *CLI) EnableDebug() {
	c.SetLogLevel(LogDebug)
	observability.NewLogHooks(c.Logger).Register()
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Chromatic computes chromatic symmetric functions of graphs",
		Long:         `Chromatic computes Stanley's chromatic symmetric function X_G of small graphs, converts it between the classical bases of symmetric functions, and searches for non-isomorphic graphs that share one.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.computeCommand())
	root.AddCommand(c.glueCommand())
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.treesCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.fixturesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// config loads the configuration file once.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. The store may be nil.
// Callers close the runner's cache when done.
func (c *CLI) newRunner(ctx context.Context, noCache bool, store catalog.Store) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, store, c.Logger), nil
}

// newCache picks Redis when configured, then the file cache. A cache that
// cannot be opened degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using the file cache", "addr", cfg.Cache.RedisAddr, "err", err)
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// openCatalog opens the configured catalog backend.
func (c *CLI) openCatalog(ctx context.Context) (catalog.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the table cache directory (~/.cache/chromatic/ unless
// configured).
func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.config()
	if err != nil {
		return "", err
	}
	return cfg.Cache.Dir, nil
}

// =============================================================================
// Graph Arguments
// =============================================================================

// readGraph resolves a graph argument: "-" reads JSON from stdin, an
// existing .json file is read from disk, anything else goes through
// pipeline.Parse.
func readGraph(arg string) (*graph.Graph, error) {
	if arg == "-" {
		return graph.Read(os.Stdin)
	}
	if strings.HasSuffix(arg, ".json") {
		if _, err := os.Stat(arg); err == nil {
			return graph.ReadFile(arg)
		}
	}
	return pipeline.Parse(arg)
}

// basisFlagCompletion completes --basis values.
func basisFlagCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"power", "monomial", "elementary", "homogeneous", "schur"}, cobra.ShellCompDirectiveNoFileComp
}

// fixtureCompletion completes graph arguments with the fixed fixture names.
func fixtureCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, n := range graph.FixtureNames() {
		if !strings.Contains(n, "<") {
			names = append(names, n)
		}
	}
	return names, cobra.ShellCompDirectiveDefault
}

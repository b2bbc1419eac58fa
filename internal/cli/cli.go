// Package cli implements the trisect command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/neurotopo/trisect/pkg/buildinfo"
	"github.com/neurotopo/trisect/pkg/cache"
	"github.com/neurotopo/trisect/pkg/errors"
	"github.com/neurotopo/trisect/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "trisect"

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

	// Config holds file-backed defaults, loaded by the root command
	// before any subcommand runs.
	Config Config

	quiet bool
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
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "trisect",
		Short:        "Trisect splits directed graphs into two clusters plus connectors",
		Long:         `Trisect searches a directed graph for two internally wired clusters, R and B, leaving the remaining nodes as G connectors. It grows cluster pairs from every candidate seed pair and keeps the partition with the highest power saving or the largest size.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "suppress progress output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TRISECT_CONFIG, then ~/.config/trisect/trisect.toml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if c.quiet {
			level = log.WarnLevel
		}
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache picks the cache backend: --no-cache wins, then the config
// profile, then a file cache under cacheDir.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case "", "file":
		dir := c.Config.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(c.Config.Cache.Addr, c.Config.Cache.Password, c.Config.Cache.DB)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown cache backend %q", c.Config.Cache.Backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/trisect/).
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

// addSearchFlags registers the search tuning flags shared by analyze and random.
func addSearchFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Criterion, "criterion", opts.Criterion, "winner criterion: power (default), size")
	cmd.Flags().StringVar(&opts.Parameter, "parameter", opts.Parameter, `"max" (default) or a numeric threshold the winner must exceed`)
	cmd.Flags().BoolVar(&opts.ExcludeInter, "exclude-inter", opts.ExcludeInter, "drop members wired only into the opposite cluster")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "parallel workers (0 = all CPUs, 1 = sequential)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if a cached result exists")
}

// applySearchConfig layers config-file search defaults under flags the
// user did not set explicitly.
func applySearchConfig(cmd *cobra.Command, cfg SearchConfig, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("criterion") && cfg.Criterion != "" {
		opts.Criterion = cfg.Criterion
	}
	if !flags.Changed("parameter") && cfg.Parameter != "" {
		opts.Parameter = cfg.Parameter
	}
	if !flags.Changed("exclude-inter") && cfg.ExcludeInter {
		opts.ExcludeInter = true
	}
	if !flags.Changed("workers") && cfg.Workers > 0 {
		opts.Workers = cfg.Workers
	}
}

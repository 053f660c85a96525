package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocksnap/pkg/buildinfo"
	"github.com/matzehuels/blocksnap/pkg/cache"
	"github.com/matzehuels/blocksnap/pkg/config"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "blocksnap"

	// defaultAddr is where serve listens unless --addr is given.
	defaultAddr = "localhost:7411"

	// defaultNudge is how far one arrow key moves the dragged stack in play.
	defaultNudge = 10

	// redisDialTimeout bounds connecting to a configured Redis cache.
	redisDialTimeout = 2 * time.Second
)

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

	// configPath overrides the default config location (--config).
	configPath string
	// noCache disables the render cache (--no-cache).
	noCache bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// Report prints err to w as users should see it and returns the exit code
// for it: 130 after an interrupt, 1 otherwise.
func Report(w io.Writer, err error) int {
	if stderrors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	fmt.Fprintln(w, "Error:", errors.UserMessage(err))
	return 1
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blocksnap previews where dragged blocks will connect",
		Long:         `Blocksnap replays block drags against a workspace and shows the connection each drop would make, the preview a block editor draws for it, and whether the drop would delete the stack.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "render SVGs without the cache")

	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Loading
// =============================================================================

// loadConfig reads the --config file, or the default file when the flag is
// unset. Only the default file may be missing.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config", "path", path, "renderer", cfg.Drag.Renderer)
	return cfg, nil
}

// loadScenario reads the config and the scenario at path.
func (c *CLI) loadScenario(path string) (*scenario.File, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	f, err := scenario.Load(path)
	if err != nil {
		return nil, cfg, err
	}
	c.Logger.Debug("scenario", "name", f.Name, "blocks", len(f.Blocks), "steps", len(f.Steps))
	return f, cfg, nil
}

// options returns scenario options for cfg that log through the CLI logger.
func (c *CLI) options(cfg *config.Config) scenario.Options {
	return scenario.Options{Config: cfg, Logger: c.Logger}
}

// =============================================================================
// Render Cache
// =============================================================================

// newCache opens the render cache: Redis when cfg names a server, else the
// cache directory. Failures degrade to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	if url := cfg.Cache.RedisURL; url != "" {
		ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, using cache directory", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/blocksnap/).
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

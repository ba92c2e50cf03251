// Package cli implements the stenoboard command-line interface.
//
// The commands render steno layouts, check layout files, replay engine
// event streams, show a live terminal display, serve displays over HTTP,
// and manage the per-system preferred layout store. Every command reads
// the TOML configuration ($XDG_CONFIG_HOME/stenoboard/config.toml, or
// --config) before running.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/buildinfo"
	"github.com/matzehuels/stenoboard/pkg/cache"
	"github.com/matzehuels/stenoboard/pkg/config"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/prefs/redis"
	"github.com/matzehuels/stenoboard/pkg/prefs/sqlite"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

// =============================================================================
// Constants
// =============================================================================

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Output formats.
const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
	formatTerm = "term"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
	registry   *steno.Registry
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		cfg:      config.Default(),
		registry: steno.NewRegistry(),
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
		Short:        "Stenoboard shows which steno keys a stroke presses",
		Long:         `Stenoboard draws a steno keyboard layout and lights up the keys of each stroke. Layouts are JSON documents; strokes come from the command line, an engine event stream, or the HTTP API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.systemsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	c.cfg, c.registry = cfg, reg
	c.Logger.Debug("config loaded", "path", c.configPath, "prefs", cfg.Prefs.Backend, "systems", len(reg.Names()))
	return nil
}

// system resolves a system by name; empty means the configured default.
func (c *CLI) system(name string) (steno.System, error) {
	if name == "" {
		name = c.cfg.DefaultSystem
	}
	return c.registry.Get(name)
}

// =============================================================================
// Store Factories
// =============================================================================

// openPrefs opens the configured preferred-layout store.
func (c *CLI) openPrefs(ctx context.Context) (prefs.Store, error) {
	p := c.cfg.Prefs
	switch p.Backend {
	case prefs.BackendMemory:
		return prefs.NewMemory(), nil
	case prefs.BackendFile, prefs.BackendSQLite:
		path, err := c.cfg.PrefsPath()
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("opening prefs store", "backend", p.Backend, "path", path)
		if p.Backend == prefs.BackendSQLite {
			s, err := sqlite.Open(path, c.Logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
		s, err := prefs.NewFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case prefs.BackendRedis:
		c.Logger.Debug("opening prefs store", "backend", p.Backend, "addr", p.RedisAddr)
		s, err := redis.NewStore(ctx, redis.Config{
			Addr:     p.RedisAddr,
			Password: p.RedisPassword,
			DB:       p.RedisDB,
			Key:      p.RedisKey,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown prefs backend %q", p.Backend)
}

// frameCache opens the PNG frame cache, or a null cache when disabled.
func (c *CLI) frameCache(noCache bool) (cache.Cache, error) {
	dir := c.cfg.CacheDir()
	if noCache || dir == "" {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{formatSVG: true, formatPNG: true, formatJSON: true, formatTerm: true}

// validateFormats checks that all requested formats are known.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'png', 'json', or 'term')", f)
		}
	}
	return nil
}

// parseKeys splits a comma- or space-separated list of raw key names.
func parseKeys(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

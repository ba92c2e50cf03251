// Package config loads stenoboard's TOML configuration.
//
// The default file is $XDG_CONFIG_HOME/stenoboard/config.toml. A missing
// file is not an error; every setting has a default:
//
//	default_system = "English Stenotype"
//
//	[viewport]
//	width = 800
//	height = 300
//
//	[prefs]
//	backend = "file"   # memory | file | sqlite | redis
//
//	[server]
//	addr = ":8080"
//
//	[[systems]]
//	name = "My Theory"
//	keys = ["#", "S-", "T-"]
//	number_key = "#"
//	[systems.numbers]
//	"1-" = "S-"
//
// Systems declared here are registered over the built-in ones by name.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

// AppName names the XDG subdirectories.
const AppName = "stenoboard"

// Config is the full configuration.
type Config struct {
	DefaultSystem string         `toml:"default_system"`
	Viewport      Viewport       `toml:"viewport"`
	Prefs         Prefs          `toml:"prefs"`
	Server        Server         `toml:"server"`
	Systems       []steno.System `toml:"systems"`
}

// Viewport is the default frame size in pixels.
type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Prefs selects the preferred-layout store.
type Prefs struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisKey      string `toml:"redis_key"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string `toml:"addr"`
	// CacheDir stores rendered PNG frames; empty disables the frame cache.
	CacheDir string   `toml:"cache_dir"`
	CacheTTL Duration `toml:"cache_ttl"`
	// ReadTimeout bounds reading a request.
	ReadTimeout Duration `toml:"read_timeout"`
}

// Duration is a time.Duration written as a string ("10m") in TOML.
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
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultSystem: steno.DefaultSystem,
		Viewport:      Viewport{Width: 800, Height: 300},
		Prefs: Prefs{
			Backend:   prefs.BackendFile,
			RedisAddr: "localhost:6379",
			RedisKey:  "stenoboard:preferred_layouts",
		},
		Server: Server{
			Addr:        ":8080",
			CacheTTL:    Duration{10 * time.Minute},
			ReadTimeout: Duration{10 * time.Second},
		},
	}
}

// DefaultPath returns the location of the config file, which need not
// exist.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Load reads the config file at path over the defaults. An empty path
// means [DefaultPath]; a missing default file yields the defaults, while a
// missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		code := errors.ErrCodeIO
		if errors.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return cfg, errors.Wrap(code, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if !slices.Contains(prefs.Backends, c.Prefs.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown prefs backend %q (want one of %v)", c.Prefs.Backend, prefs.Backends)
	}
	if c.Prefs.Backend == prefs.BackendRedis && c.Prefs.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis backend needs redis_addr")
	}
	for i, s := range c.Systems {
		if err := s.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "systems[%d]", i)
		}
	}
	return nil
}

// Registry returns the built-in systems with the configured ones
// registered over them.
func (c Config) Registry() (*steno.Registry, error) {
	r := steno.NewRegistry()
	for _, s := range c.Systems {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// PrefsPath returns the file or database path for file-backed prefs
// stores, defaulting under the XDG data home.
func (c Config) PrefsPath() (string, error) {
	if c.Prefs.Path != "" {
		return c.Prefs.Path, nil
	}
	name := "preferred_layouts.json"
	if c.Prefs.Backend == prefs.BackendSQLite {
		name = "preferred_layouts.db"
	}
	p, err := xdg.DataFile(filepath.Join(AppName, name))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "resolve prefs path")
	}
	return p, nil
}

// CacheDir returns the frame cache directory, or empty when caching is
// off.
func (c Config) CacheDir() string {
	return c.Server.CacheDir
}

// DefaultCacheDir is the suggested frame cache location.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName, "frames")
}

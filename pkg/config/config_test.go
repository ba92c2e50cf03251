package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_system = "Mini"

[viewport]
width = 400
height = 150

[prefs]
backend = "sqlite"
path = "/tmp/prefs.db"

[server]
addr = "127.0.0.1:9000"
cache_ttl = "1h"

[[systems]]
name = "Mini"
keys = ["#", "S-", "T-"]
number_key = "#"
[systems.numbers]
"1-" = "S-"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultSystem != "Mini" || cfg.Viewport.Width != 400 || cfg.Viewport.Height != 150 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Prefs.Backend != prefs.BackendSQLite || cfg.Prefs.RedisKey == "" {
		t.Errorf("prefs = %+v, want sqlite with default redis key kept", cfg.Prefs)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.CacheTTL.Duration != time.Hour {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want default", cfg.Server.ReadTimeout)
	}
	if p, _ := cfg.PrefsPath(); p != "/tmp/prefs.db" {
		t.Errorf("PrefsPath() = %q", p)
	}

	r, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	mini, ok := r.Lookup("Mini")
	if !ok || mini.Numbers["1-"] != "S-" || mini.NumberKey != "#" {
		t.Errorf("Mini = %+v, %v", mini, ok)
	}
	if _, ok := r.Lookup(steno.DefaultSystem); !ok {
		t.Error("built-in system lost")
	}
}

func TestLoadOverridesBuiltinSystem(t *testing.T) {
	path := writeConfig(t, `
[[systems]]
name = "English Stenotype"
number_key = "#"
[systems.numbers]
"1-" = "S-"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Registry()
	if err != nil {
		t.Fatal(err)
	}
	en, _ := r.Lookup(steno.DefaultSystem)
	if len(en.Numbers) != 1 {
		t.Errorf("English Stenotype numbers = %v, want config override", en.Numbers)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `viewport = [`},
		{"bad backend", "[prefs]\nbackend = \"mongo\""},
		{"zero viewport", "[viewport]\nwidth = 0"},
		{"unnamed system", "[[systems]]\nnumber_key = \"#\""},
		{"bad duration", "[server]\ncache_ttl = \"soon\""},
		{"redis without addr", "[prefs]\nbackend = \"redis\"\nredis_addr = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDurationText(t *testing.T) {
	d := Duration{90 * time.Second}
	text, err := d.MarshalText()
	if err != nil || string(text) != "1m30s" {
		t.Errorf("MarshalText = %q, %v", text, err)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("parse embedded defaults: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("embedded defaults differ from Default() (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
game:
  mode: endless
  seed: 7
server:
  idle_timeout: 90s
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Game.Mode = "endless"
	want.Game.Seed = 7
	want.Server.IdleTimeout = 90 * time.Second
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "game: [unterminated")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := writeFile(t, dir, "invalid.yaml", "game:\n  mode: arcade\n  tick_rate: 0\n")
	_, err := Load(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("invalid values: err = %v, want ErrInvalid", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Mode != "classic" {
		t.Errorf("default mode = %q, want classic", cfg.Game.Mode)
	}

	// Local configs directory.
	writeFile(t, work, filepath.Join("configs", "t2048.yaml"), "game:\n  tick_rate: 60\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.TickRate != 60 {
		t.Errorf("tick_rate = %d, want 60 from ./configs", cfg.Game.TickRate)
	}

	// User config wins over the local directory.
	writeFile(t, home, filepath.Join(".t2048", "config.yaml"), "game:\n  tick_rate: 15\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.TickRate != 15 {
		t.Errorf("tick_rate = %d, want 15 from ~/.t2048", cfg.Game.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "endless mode", mutate: func(c *Config) { c.Game.Mode = "endless" }, ok: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Game.Mode = "tetris" }},
		{name: "tick rate too low", mutate: func(c *Config) { c.Game.TickRate = 0 }},
		{name: "tick rate too high", mutate: func(c *Config) { c.Game.TickRate = MaxTickRate + 1 }},
		{name: "empty address", mutate: func(c *Config) { c.Server.Address = "" }},
		{name: "negative idle timeout", mutate: func(c *Config) { c.Server.IdleTimeout = -time.Second }},
		{name: "negative session limit", mutate: func(c *Config) { c.Server.MaxSessionsPerIP = -1 }},
		{name: "empty db path", mutate: func(c *Config) { c.Storage.DBPath = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.t2048/results.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".t2048", "results.db"); got != want {
		t.Errorf("ExpandHome = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/results.db"); got != "/tmp/results.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

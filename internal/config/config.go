// Package config provides YAML-based configuration for the t2048 binary:
// game mode and tick rate, display options, the SSH server, the results
// database and logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the full configuration file.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig selects the rules and pacing of a run.
type GameConfig struct {
	Mode     string `yaml:"mode"`      // "classic" or "endless"
	TickRate int    `yaml:"tick_rate"` // Ticks per second
	Seed     int64  `yaml:"seed"`      // 0 = time-based
}

// DisplayConfig controls terminal rendering.
type DisplayConfig struct {
	Colors    bool `yaml:"colors"`
	AltScreen bool `yaml:"alt_screen"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address          string        `yaml:"address"`
	HostKey          string        `yaml:"host_key"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	MaxSessionsPerIP int           `yaml:"max_sessions_per_ip"`
}

// StorageConfig locates the results database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig sets the log verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	MinTickRate = 1
	MaxTickRate = 120
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks every field and returns all problems joined together.
func (c Config) Validate() error {
	var errs []error

	switch c.Game.Mode {
	case "classic", "endless":
	default:
		errs = append(errs, fmt.Errorf("%w: game.mode %q (want classic or endless)", ErrInvalid, c.Game.Mode))
	}
	if c.Game.TickRate < MinTickRate || c.Game.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("%w: game.tick_rate %d (want %d..%d)", ErrInvalid, c.Game.TickRate, MinTickRate, MaxTickRate))
	}
	if c.Server.Address == "" {
		errs = append(errs, fmt.Errorf("%w: server.address is empty", ErrInvalid))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: server.idle_timeout %s is negative", ErrInvalid, c.Server.IdleTimeout))
	}
	if c.Server.MaxSessionsPerIP < 0 {
		errs = append(errs, fmt.Errorf("%w: server.max_sessions_per_ip %d is negative", ErrInvalid, c.Server.MaxSessionsPerIP))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, fmt.Errorf("%w: storage.db_path is empty", ErrInvalid))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

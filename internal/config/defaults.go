package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/t2048.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			Mode:     "classic",
			TickRate: 30,
		},
		Display: DisplayConfig{
			Colors:    true,
			AltScreen: true,
		},
		Server: ServerConfig{
			Address:          ":23234",
			IdleTimeout:      30 * time.Minute,
			MaxSessionsPerIP: 3,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/results.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/trio.yaml
var defaultTrioYAML []byte

// Default returns the built-in configuration. It matches defaults/trio.yaml.
func Default() Config {
	return Config{
		Game: GameConfig{
			Variant:      "classic",
			WinningScore: 100,
			MaxTurns:     10,
			Names:        []string{"Player 1", "Player 2", "Player 3"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DBPath: "~/.trio/trio.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTrioYAML
}

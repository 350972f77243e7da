// Package config provides YAML-based configuration loading for trio,
// with environment overrides and match-length presets.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trio/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full trio configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig holds the match settings.
type GameConfig struct {
	Variant      string   `yaml:"variant" env:"TRIO_VARIANT"`
	WinningScore int      `yaml:"winning_score" env:"TRIO_WINNING_SCORE"`
	MaxTurns     int      `yaml:"max_turns" env:"TRIO_MAX_TURNS"`
	Strict       bool     `yaml:"strict" env:"TRIO_STRICT"`
	Seed         int64    `yaml:"seed" env:"TRIO_SEED"` // 0 = time based
	Names        []string `yaml:"names" env:"TRIO_NAMES" env-separator:","`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level" env:"TRIO_LOG_LEVEL"`
}

// StorageConfig holds match history settings.
type StorageConfig struct {
	DBPath   string `yaml:"db_path" env:"TRIO_DB"`
	Disabled bool   `yaml:"disabled" env:"TRIO_NO_SAVE"`
}

// Validate checks the config for values the game would reject.
func (c Config) Validate() error {
	var problems []string
	if c.Game.Variant == "" {
		problems = append(problems, "game.variant is empty")
	}
	if c.Game.WinningScore <= 0 {
		problems = append(problems, fmt.Sprintf("game.winning_score must be positive, got %d", c.Game.WinningScore))
	}
	if c.Game.MaxTurns <= 0 {
		problems = append(problems, fmt.Sprintf("game.max_turns must be positive, got %d", c.Game.MaxTurns))
	}
	if len(c.Game.Names) != 3 {
		problems = append(problems, fmt.Sprintf("game.names must list 3 players, got %d", len(c.Game.Names)))
	}
	for i, name := range c.Game.Names {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, fmt.Sprintf("game.names[%d] is empty", i))
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not a level", c.Log.Level))
	}
	if !c.Storage.Disabled && c.Storage.DBPath == "" {
		problems = append(problems, "storage.db_path is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// RuntimeConfig converts the game section into the settings games are
// created from. Call Validate first; missing names are left blank.
func (c Config) RuntimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	for i := 0; i < len(rc.Names) && i < len(c.Game.Names); i++ {
		rc.Names[i] = strings.TrimSpace(c.Game.Names[i])
	}
	rc.WinningScore = c.Game.WinningScore
	rc.MaxTurns = c.Game.MaxTurns
	rc.Seed = c.Game.Seed
	rc.Strict = c.Game.Strict
	return rc
}

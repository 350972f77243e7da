package config

import (
	"fmt"
	"strings"
)

// Preset is a named match length.
type Preset string

const (
	PresetQuick    Preset = "quick"
	PresetStandard Preset = "standard"
	PresetMarathon Preset = "marathon"
)

// Presets lists the known presets, shortest first.
var Presets = []Preset{PresetQuick, PresetStandard, PresetMarathon}

// ParsePreset converts a flag value into a Preset.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, s)
}

// thresholds returns the winning score and turn limit for a preset.
func (p Preset) thresholds() (winningScore, maxTurns int) {
	switch p {
	case PresetQuick:
		return 50, 5
	case PresetMarathon:
		return 200, 30
	default:
		return 100, 10
	}
}

// ApplyPreset overwrites the game thresholds with the preset's values.
func (c *Config) ApplyPreset(p Preset) {
	c.Game.WinningScore, c.Game.MaxTurns = p.thresholds()
}

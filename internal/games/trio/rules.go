package trio

import (
	"fmt"

	"github.com/vovakirdan/trio/internal/core"
)

// PlayerCount is the only seat count the rules accept.
const PlayerCount = 3

// Exact-score bonus: a player sitting on SpecialRuleScore gains SpecialRuleBonus.
const (
	SpecialRuleScore = 50
	SpecialRuleBonus = 10
)

// RulesConfig holds the win and turn thresholds.
type RulesConfig struct {
	WinningScore int
	MaxTurns     int
}

// DefaultRulesConfig returns a 100 point, 10 turn game.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		WinningScore: 100,
		MaxTurns:     10,
	}
}

// Rules evaluates win and game-over conditions over score tables.
// It holds no player state and is immutable after construction.
type Rules struct {
	cfg RulesConfig
}

// NewRules validates cfg and returns the rules for it.
func NewRules(cfg RulesConfig) (*Rules, error) {
	if cfg.WinningScore <= 0 {
		return nil, fmt.Errorf("%w: winning score must be positive, got %d", ErrInvalidRules, cfg.WinningScore)
	}
	if cfg.MaxTurns <= 0 {
		return nil, fmt.Errorf("%w: max turns must be positive, got %d", ErrInvalidRules, cfg.MaxTurns)
	}
	return &Rules{cfg: cfg}, nil
}

// Config returns the thresholds in use.
func (r *Rules) Config() RulesConfig {
	return r.cfg
}

// ValidatePlayerCount returns ErrInvalidPlayerCount unless n is 3.
func (r *Rules) ValidatePlayerCount(n int) error {
	if n != PlayerCount {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, n)
	}
	return nil
}

// CheckWinCondition returns a player whose score reached the winning score.
// When several qualify the highest score wins, then the earliest seat.
func (r *Rules) CheckWinCondition(scores core.Scores) (core.PlayerID, bool) {
	var best core.PlayerScore
	found := false
	for _, e := range scores {
		if e.Score < r.cfg.WinningScore {
			continue
		}
		if !found || e.Score > best.Score {
			best = e
			found = true
		}
	}
	return best.ID, found
}

// IsGameOver reports whether the turn limit is reached or someone has won.
func (r *Rules) IsGameOver(turnCount int, scores core.Scores) bool {
	if turnCount >= r.cfg.MaxTurns {
		return true
	}
	_, won := r.CheckWinCondition(scores)
	return won
}

// ApplySpecialRule adds the bonus to id's entry in scores when it sits exactly
// on SpecialRuleScore. Only scores is modified. Returns whether it applied.
func (r *Rules) ApplySpecialRule(id core.PlayerID, scores core.Scores) bool {
	for i := range scores {
		if scores[i].ID != id {
			continue
		}
		if scores[i].Score != SpecialRuleScore {
			return false
		}
		scores[i].Score += SpecialRuleBonus
		return true
	}
	return false
}

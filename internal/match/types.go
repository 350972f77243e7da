// Package match drives registered games to completion, identifies each run
// with a match ID and hands finished results to an optional saver.
package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/trio/internal/core"
)

// ID uniquely identifies a finished or running match.
type ID string

// NewID returns a fresh random match ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Result contains the outcome of a completed match.
type Result struct {
	MatchID   ID
	Variant   string
	Seed      int64
	Turns     int
	Winner    core.PlayerID // Empty when the turn limit ended the match
	Reason    core.EndReason
	Players   []core.PlayerState // Final seats, in turn order
	StartedAt time.Time
	Duration  time.Duration
}

// HasWinner reports whether a player reached the winning score.
func (r Result) HasWinner() bool {
	return r.Reason == core.EndReasonWinner && r.Winner != ""
}

// WinnerName returns the display name of the winner, or "" for a draw.
func (r Result) WinnerName() string {
	if !r.HasWinner() {
		return ""
	}
	for _, p := range r.Players {
		if p.ID == r.Winner {
			return p.Name
		}
	}
	return string(r.Winner)
}

// Scores returns the final score table in seat order.
func (r Result) Scores() core.Scores {
	s := make(core.Scores, len(r.Players))
	for i, p := range r.Players {
		s[i] = core.PlayerScore{ID: p.ID, Score: p.Score}
	}
	return s
}

// ResultSaver persists finished matches.
// This allows the runner to save results without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(result Result) error
}

// ResultSaverFunc adapts a function to the ResultSaver interface.
type ResultSaverFunc func(result Result) error

// SaveMatchResult calls f(result).
func (f ResultSaverFunc) SaveMatchResult(result Result) error {
	return f(result)
}

package core

import (
	"errors"
	"fmt"
	"strings"
)

// PlayerID identifies a seat for the lifetime of a game.
type PlayerID string

// Item is an opaque hand entry, compared by equality.
type Item string

// Action is a player's choice for one turn.
type Action string

const (
	ActionAttack  Action = "attack"
	ActionDefend  Action = "defend"
	ActionSpecial Action = "special"
)

// Actions lists the valid actions in selection order.
var Actions = []Action{ActionAttack, ActionDefend, ActionSpecial}

// ErrUnknownAction is returned for actions outside attack/defend/special.
var ErrUnknownAction = errors.New("unknown action")

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionAttack, ActionDefend, ActionSpecial:
		return true
	default:
		return false
	}
}

// ParseAction converts user input to an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// PlayerScore is one entry of a Scores table.
type PlayerScore struct {
	ID    PlayerID
	Score int
}

// Scores maps players to scores, keeping seat (insertion) order.
type Scores []PlayerScore

// Get returns the score for id.
func (s Scores) Get(id PlayerID) (int, bool) {
	for _, e := range s {
		if e.ID == id {
			return e.Score, true
		}
	}
	return 0, false
}

// Set updates the score for id, appending it if missing.
func (s *Scores) Set(id PlayerID, score int) {
	for i := range *s {
		if (*s)[i].ID == id {
			(*s)[i].Score = score
			return
		}
	}
	*s = append(*s, PlayerScore{ID: id, Score: score})
}

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, len(s))
	copy(out, s)
	return out
}

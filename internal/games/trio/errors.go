package trio

import (
	"errors"

	"github.com/vovakirdan/trio/internal/core"
)

var (
	ErrInvalidPlayerCount = errors.New("game requires exactly 3 players")
	ErrDuplicatePlayer    = errors.New("duplicate player id")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrInvalidRules       = errors.New("invalid rules config")
	ErrInvalidMove        = errors.New("invalid move")
	ErrItemNotFound       = errors.New("item not found in hand")
	ErrGameOver           = errors.New("game is already over")

	// ErrUnknownAction is core.ErrUnknownAction, re-exported for callers of this package.
	ErrUnknownAction = core.ErrUnknownAction
)

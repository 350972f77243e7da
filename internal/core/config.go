package core

// RuntimeConfig contains configuration passed to games at creation.
type RuntimeConfig struct {
	Names        [3]string // Seat names, in turn order
	WinningScore int       // Score that wins the game
	MaxTurns     int       // Full rotations before the game ends without a winner
	Seed         int64     // RNG seed for deterministic play
	Strict       bool      // Fail the turn on unknown actions instead of skipping them

	Policy    Policy     // Nil uses uniform random actions
	Observers []Observer // Receive every game event
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Names:        [3]string{"Player 1", "Player 2", "Player 3"},
		WinningScore: 100,
		MaxTurns:     10,
		Seed:         0, // 0 means use current time in the CLI layer
	}
}

// EndReason describes why a game stopped.
type EndReason int

const (
	EndReasonNone      EndReason = iota // Game still running
	EndReasonWinner                     // A player reached the winning score
	EndReasonTurnLimit                  // Max turns elapsed without a winner
)

// String returns a human-readable name for the end reason.
func (r EndReason) String() string {
	switch r {
	case EndReasonNone:
		return "none"
	case EndReasonWinner:
		return "winner"
	case EndReasonTurnLimit:
		return "turn_limit"
	default:
		return "unknown"
	}
}

// PlayerState is a read-only view of one seat.
type PlayerState struct {
	ID    PlayerID
	Name  string
	Score int
	Hand  []Item
}

// GameState is a snapshot of a game, returned by Game.State().
type GameState struct {
	Players  []PlayerState
	Current  int  // Seat index of the player to act
	Turn     int  // Completed full rotations
	Over     bool // Terminal flag
	Winner   PlayerID
	HasWin   bool
	Reason   EndReason
	Scores   Scores
	Variant  string
	MaxTurns int
	Seed     int64 // Seed of the game's random source; 0 if unknown
}

// TurnResult is returned by Game.PlayTurn().
type TurnResult struct {
	State GameState
	Acted int // Number of seats that acted this turn (less than 3 on a mid-turn win)
}

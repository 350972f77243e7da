package core

// Event is emitted by a game as it resolves turns.
// Games never print; observers decide where events go.
type Event interface {
	gameEvent()
}

// TurnStarted is emitted before the first seat acts in a turn.
type TurnStarted struct {
	Turn int
}

func (TurnStarted) gameEvent() {}

// ActionResolved is emitted after a seat's action has been applied.
type ActionResolved struct {
	Turn   int
	Actor  PlayerID
	Action Action
	Target PlayerID // Set for attacks
	Damage int      // Set for attacks
	Effect string   // Set for specials
	Card   Item     // Card played by a special in the cards variant
	Err    error    // Non-fatal problem, e.g. no card left to play
}

func (ActionResolved) gameEvent() {}

// InvalidAction is emitted when a policy chose an unknown action.
type InvalidAction struct {
	Turn   int
	Actor  PlayerID
	Action Action
	Err    error
}

func (InvalidAction) gameEvent() {}

// SpecialRuleApplied is emitted when the exact-score bonus fires.
type SpecialRuleApplied struct {
	Turn   int
	Player PlayerID
	Before int
	After  int
}

func (SpecialRuleApplied) gameEvent() {}

// GameOver is emitted once when a game reaches its terminal state.
type GameOver struct {
	Turn   int
	Winner PlayerID // Empty when Reason is EndReasonTurnLimit
	Reason EndReason
	Scores Scores
}

func (GameOver) gameEvent() {}

// GameReset is emitted after a game returns to its initial state.
type GameReset struct{}

func (GameReset) gameEvent() {}

// Observer receives game events synchronously, in order.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}

// Decision is a policy's choice for one seat.
type Decision struct {
	Action Action
	Target PlayerID // Empty picks a random opponent
	Damage int      // Zero or less uses the game's damage function
}

// Policy chooses what a seat does on its turn.
type Policy interface {
	Decide(state GameState, actor PlayerID, rng Rand) Decision
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(state GameState, actor PlayerID, rng Rand) Decision

// Decide calls f.
func (f PolicyFunc) Decide(state GameState, actor PlayerID, rng Rand) Decision {
	return f(state, actor, rng)
}

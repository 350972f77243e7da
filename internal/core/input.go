package core

import "time"

// InputEvent is a discrete event produced by an input surface,
// abstracted from physical key presses.
type InputEvent int

const (
	InputNone    InputEvent = iota
	InputJump               // Space, W, Up - evasive move, resolves to defend
	InputShoot              // F, Enter - fire, resolves to attack
	InputSpecial            // E - special ability
	InputLeft               // A, Left - directional state only
	InputRight              // D, Right - directional state only
)

// String returns a human-readable name for the input event.
func (e InputEvent) String() string {
	switch e {
	case InputNone:
		return "None"
	case InputJump:
		return "Jump"
	case InputShoot:
		return "Shoot"
	case InputSpecial:
		return "Special"
	case InputLeft:
		return "Left"
	case InputRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// ParseInputEvent maps event names ("jump", "shoot", ...) to events.
func ParseInputEvent(s string) (InputEvent, bool) {
	switch s {
	case "jump":
		return InputJump, true
	case "shoot":
		return InputShoot, true
	case "special":
		return InputSpecial, true
	case "left":
		return InputLeft, true
	case "right":
		return InputRight, true
	default:
		return InputNone, false
	}
}

// InputFrame holds the events triggered for one player before they act.
type InputFrame struct {
	Events map[InputEvent]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Events: make(map[InputEvent]bool),
	}
}

// Set marks an event as triggered for this frame.
func (f *InputFrame) Set(e InputEvent) {
	if f.Events == nil {
		f.Events = make(map[InputEvent]bool)
	}
	f.Events[e] = true
}

// Has returns true if the given event was triggered this frame.
func (f InputFrame) Has(e InputEvent) bool {
	if f.Events == nil {
		return false
	}
	return f.Events[e]
}

// Clear resets all events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Events {
		delete(f.Events, k)
	}
}

// Default cooldowns between repeated actions.
const (
	DefaultJumpCooldown  = time.Second
	DefaultShootCooldown = 500 * time.Millisecond
)

// Controls turns input events into actions, rate limiting jump and shoot.
// The clock is injected so cooldowns can be tested without sleeping.
type Controls struct {
	JumpCooldown  time.Duration
	ShootCooldown time.Duration

	now       func() time.Time
	lastJump  time.Time
	lastShoot time.Time
}

// NewControls creates controls with the default cooldowns.
// A nil clock uses time.Now.
func NewControls(now func() time.Time) *Controls {
	if now == nil {
		now = time.Now
	}
	return &Controls{
		JumpCooldown:  DefaultJumpCooldown,
		ShootCooldown: DefaultShootCooldown,
		now:           now,
	}
}

// Handle resolves an input event to an action.
// Returns false for directional events and for jump/shoot still cooling down.
func (c *Controls) Handle(e InputEvent) (Action, bool) {
	t := c.now()
	switch e {
	case InputJump:
		if !ready(c.lastJump, t, c.JumpCooldown) {
			return "", false
		}
		c.lastJump = t
		return ActionDefend, true
	case InputShoot:
		if !ready(c.lastShoot, t, c.ShootCooldown) {
			return "", false
		}
		c.lastShoot = t
		return ActionAttack, true
	case InputSpecial:
		return ActionSpecial, true
	default:
		return "", false
	}
}

// HandleFrame resolves the first actionable event of a frame.
// Shoot takes priority over special, special over jump.
func (c *Controls) HandleFrame(f InputFrame) (Action, bool) {
	for _, e := range []InputEvent{InputShoot, InputSpecial, InputJump} {
		if !f.Has(e) {
			continue
		}
		if a, ok := c.Handle(e); ok {
			return a, true
		}
	}
	return "", false
}

func ready(last, now time.Time, cooldown time.Duration) bool {
	return last.IsZero() || now.Sub(last) >= cooldown
}

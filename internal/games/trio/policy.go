package trio

import (
	"github.com/vovakirdan/trio/internal/core"
)

// RandomPolicy picks attack, defend or special uniformly and leaves
// target selection to the game.
type RandomPolicy struct{}

// Decide implements core.Policy.
func (RandomPolicy) Decide(_ core.GameState, _ core.PlayerID, rng core.Rand) core.Decision {
	return core.Decision{Action: core.Pick(rng, core.Actions)}
}

// ScriptedPolicy replays moves in acting order, then defers to a fallback.
type ScriptedPolicy struct {
	moves    []Move
	next     int
	fallback core.Policy
}

// NewScriptedPolicy creates a policy that replays moves.
// A nil fallback uses RandomPolicy once the script runs out.
func NewScriptedPolicy(moves []Move, fallback core.Policy) *ScriptedPolicy {
	if fallback == nil {
		fallback = RandomPolicy{}
	}
	return &ScriptedPolicy{moves: moves, fallback: fallback}
}

// Decide implements core.Policy.
func (p *ScriptedPolicy) Decide(state core.GameState, actor core.PlayerID, rng core.Rand) core.Decision {
	if p.next >= len(p.moves) {
		return p.fallback.Decide(state, actor, rng)
	}
	m := p.moves[p.next]
	p.next++
	return m.Decision()
}

// Remaining returns how many scripted moves are left.
func (p *ScriptedPolicy) Remaining() int {
	return len(p.moves) - p.next
}

// Rewind restarts the script from the first move.
func (p *ScriptedPolicy) Rewind() {
	p.next = 0
}

// InputPolicy resolves queued input frames through cooldown-gated controls.
// A seat without an actionable frame defends.
type InputPolicy struct {
	controls map[core.PlayerID]*core.Controls
	frames   map[core.PlayerID][]core.InputFrame
	newCtl   func() *core.Controls
}

// NewInputPolicy creates an input policy; newControls builds the per-seat
// controls on first use (nil uses core.NewControls with the wall clock).
func NewInputPolicy(newControls func() *core.Controls) *InputPolicy {
	if newControls == nil {
		newControls = func() *core.Controls { return core.NewControls(nil) }
	}
	return &InputPolicy{
		controls: make(map[core.PlayerID]*core.Controls),
		frames:   make(map[core.PlayerID][]core.InputFrame),
		newCtl:   newControls,
	}
}

// Push queues a frame for the given seat's next action.
func (p *InputPolicy) Push(id core.PlayerID, f core.InputFrame) {
	p.frames[id] = append(p.frames[id], f)
}

// Decide implements core.Policy.
func (p *InputPolicy) Decide(_ core.GameState, actor core.PlayerID, _ core.Rand) core.Decision {
	queue := p.frames[actor]
	if len(queue) == 0 {
		return core.Decision{Action: core.ActionDefend}
	}
	f := queue[0]
	p.frames[actor] = queue[1:]

	ctl, ok := p.controls[actor]
	if !ok {
		ctl = p.newCtl()
		p.controls[actor] = ctl
	}
	if a, ok := ctl.HandleFrame(f); ok {
		return core.Decision{Action: a}
	}
	return core.Decision{Action: core.ActionDefend}
}

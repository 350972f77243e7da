// Package eventlog turns game events into structured log lines and
// human-readable narration.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trio/internal/core"
)

// NewLogger creates the logger used across the CLI.
// level is one of debug, info, warn, error; unknown levels fall back to info.
func NewLogger(w io.Writer, prefix, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// LogObserver writes each event to a logger.
// Turn starts and actions are logged at debug; outcomes at info.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates an observer writing to logger.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// OnEvent implements core.Observer.
func (o *LogObserver) OnEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.TurnStarted:
		o.logger.Debug("turn started", "turn", e.Turn)
	case core.ActionResolved:
		kv := []any{"turn", e.Turn, "actor", e.Actor, "action", e.Action}
		switch e.Action {
		case core.ActionAttack:
			kv = append(kv, "target", e.Target, "damage", e.Damage)
		case core.ActionSpecial:
			kv = append(kv, "effect", e.Effect)
			if e.Card != "" {
				kv = append(kv, "card", e.Card)
			}
		}
		if e.Err != nil {
			kv = append(kv, "error", e.Err)
			o.logger.Warn("action incomplete", kv...)
			return
		}
		o.logger.Debug("action resolved", kv...)
	case core.InvalidAction:
		o.logger.Warn("invalid action skipped", "turn", e.Turn, "actor", e.Actor, "action", e.Action, "error", e.Err)
	case core.SpecialRuleApplied:
		o.logger.Info("special rule applied", "player", e.Player, "before", e.Before, "after", e.After)
	case core.GameOver:
		if e.Reason == core.EndReasonWinner {
			o.logger.Info("game over", "turn", e.Turn, "winner", e.Winner)
		} else {
			o.logger.Info("game over", "turn", e.Turn, "reason", e.Reason)
		}
	case core.GameReset:
		o.logger.Info("game reset")
	}
}

// Recorder keeps every event it sees. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []core.Event
}

// OnEvent implements core.Observer.
func (r *Recorder) OnEvent(ev core.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Narrator writes one line of prose per event, naming players by display name.
type Narrator struct {
	w     io.Writer
	names map[core.PlayerID]string
}

// NewNarrator creates a narrator; names maps IDs to display names.
func NewNarrator(w io.Writer, players []core.PlayerState) *Narrator {
	names := make(map[core.PlayerID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return &Narrator{w: w, names: names}
}

// OnEvent implements core.Observer.
func (n *Narrator) OnEvent(ev core.Event) {
	if line := n.Describe(ev); line != "" {
		fmt.Fprintln(n.w, line)
	}
}

// Describe renders an event as text. Returns "" for events with no narration.
func (n *Narrator) Describe(ev core.Event) string {
	switch e := ev.(type) {
	case core.TurnStarted:
		return fmt.Sprintf("Turn %d", e.Turn+1)
	case core.ActionResolved:
		switch e.Action {
		case core.ActionAttack:
			return fmt.Sprintf("  %s attacks %s for %d damage!", n.name(e.Actor), n.name(e.Target), e.Damage)
		case core.ActionDefend:
			return fmt.Sprintf("  %s defends!", n.name(e.Actor))
		case core.ActionSpecial:
			var b strings.Builder
			fmt.Fprintf(&b, "  %s uses a special ability: %s!", n.name(e.Actor), e.Effect)
			if e.Card != "" {
				fmt.Fprintf(&b, " (plays %s)", e.Card)
			}
			if e.Err != nil {
				fmt.Fprintf(&b, " (no card to play)")
			}
			return b.String()
		}
	case core.InvalidAction:
		return fmt.Sprintf("  %s tried an invalid action %q", n.name(e.Actor), e.Action)
	case core.SpecialRuleApplied:
		return fmt.Sprintf("  %s lands on exactly %d, bonus applied: now %d", n.name(e.Player), e.Before, e.After)
	case core.GameOver:
		if e.Reason == core.EndReasonWinner {
			return fmt.Sprintf("%s wins!", n.name(e.Winner))
		}
		return "Turn limit reached, no winner."
	case core.GameReset:
		return "Game has been reset."
	}
	return ""
}

func (n *Narrator) name(id core.PlayerID) string {
	if name, ok := n.names[id]; ok && name != "" {
		return name
	}
	return string(id)
}

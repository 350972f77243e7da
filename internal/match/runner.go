package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trio/internal/core"
	"github.com/vovakirdan/trio/internal/registry"
)

// Runner plays games turn by turn until they end.
// A Runner holds no per-match state and may run matches concurrently as
// long as its saver is safe for concurrent use.
type Runner struct {
	saver  ResultSaver // Optional, can be nil
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithSaver sets where finished matches are saved.
func WithSaver(s ResultSaver) Option {
	return func(r *Runner) { r.saver = s }
}

// WithLogger sets the logger for match lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a runner. Without options it saves nothing and logs nowhere.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Play creates the named variant from cfg and runs it to completion.
func (r *Runner) Play(ctx context.Context, variant string, cfg core.RuntimeConfig) (Result, error) {
	g, err := registry.Create(variant, cfg)
	if err != nil {
		return Result{}, err
	}
	return r.run(ctx, g)
}

// Run drives an existing game to completion. The game is played from its
// current state; call Reset first to replay a finished game. The result
// carries the seed the game reports, which is 0 for an injected source.
func (r *Runner) Run(ctx context.Context, g registry.Game) (Result, error) {
	return r.run(ctx, g)
}

func (r *Runner) run(ctx context.Context, g registry.Game) (Result, error) {
	id := NewID()
	started := r.now()
	logger := r.logger.With("match", id, "variant", g.ID())
	logger.Debug("match started", "seed", g.State().Seed)

	for !g.State().Over {
		if err := ctx.Err(); err != nil {
			logger.Warn("match interrupted", "turn", g.State().Turn, "error", err)
			return r.result(id, g, started), fmt.Errorf("match %s: %w", id, err)
		}
		if _, err := g.PlayTurn(); err != nil {
			logger.Error("turn failed", "turn", g.State().Turn, "error", err)
			return r.result(id, g, started), fmt.Errorf("match %s: turn %d: %w", id, g.State().Turn, err)
		}
	}

	res := r.result(id, g, started)
	if res.HasWinner() {
		logger.Info("match finished", "winner", res.WinnerName(), "turns", res.Turns, "duration", res.Duration)
	} else {
		logger.Info("match finished", "reason", res.Reason, "turns", res.Turns, "duration", res.Duration)
	}

	if r.saver != nil {
		if err := r.saver.SaveMatchResult(res); err != nil {
			return res, fmt.Errorf("match %s: save: %w", id, err)
		}
	}
	return res, nil
}

func (r *Runner) result(id ID, g registry.Game, started time.Time) Result {
	state := g.State()
	return Result{
		MatchID:   id,
		Variant:   g.ID(),
		Seed:      state.Seed,
		Turns:     state.Turn,
		Winner:    state.Winner,
		Reason:    state.Reason,
		Players:   state.Players,
		StartedAt: started,
		Duration:  r.now().Sub(started),
	}
}

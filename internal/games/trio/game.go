// Package trio implements the three-player turn-based arena: players take
// turns in fixed seat order choosing to attack, defend or use a special,
// until someone reaches the winning score or the turn limit runs out.
package trio

import (
	"fmt"
	"time"

	"github.com/vovakirdan/trio/internal/core"
	"github.com/vovakirdan/trio/internal/registry"
)

// Variant identifiers.
const (
	VariantClassic = "classic"
	VariantCards   = "cards"
)

// Game orchestrates turns over exactly three players.
// It is not safe for concurrent use; separate games share nothing.
type Game struct {
	players []*Player
	rules   *Rules

	rng       core.Rand
	seed      int64 // Source of rng; 0 when supplied through WithRand
	policy    core.Policy
	damage    DamageFunc
	observers []core.Observer
	strict    bool
	deck      []core.Item // Non-nil in the cards variant

	current   int
	turn      int
	over      bool
	winner    core.PlayerID
	hasWinner bool
	reason    core.EndReason
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source for action, target, damage and shuffle draws.
// The game cannot report a seed for a source it did not create.
func WithRand(rng core.Rand) Option {
	return func(g *Game) {
		g.rng = rng
		g.seed = 0
	}
}

// WithSeed seeds a fresh random source and records the seed in State.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = core.NewRand(seed)
		g.seed = seed
	}
}

// WithPolicy sets how seats choose actions.
func WithPolicy(p core.Policy) Option {
	return func(g *Game) {
		if p != nil {
			g.policy = p
		}
	}
}

// WithDamage replaces DefaultDamage.
func WithDamage(f DamageFunc) Option {
	return func(g *Game) {
		if f != nil {
			g.damage = f
		}
	}
}

// WithObserver adds an event observer. Observers run synchronously in the
// order they were added.
func WithObserver(o core.Observer) Option {
	return func(g *Game) {
		if o != nil {
			g.observers = append(g.observers, o)
		}
	}
}

// WithStrictActions makes PlayTurn fail on unknown actions instead of
// skipping them.
func WithStrictActions() Option {
	return func(g *Game) { g.strict = true }
}

// WithDeck switches the game to the cards variant: the deck is shuffled and
// dealt at start and on every reset, and specials play a card.
func WithDeck(deck []core.Item) Option {
	return func(g *Game) {
		g.deck = make([]core.Item, len(deck))
		copy(g.deck, deck)
	}
}

// New creates a game over the given players in seat order. The game keeps
// its own copies; later changes to players do not reach it.
func New(players []*Player, cfg RulesConfig, opts ...Option) (*Game, error) {
	rules, err := NewRules(cfg)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidatePlayerCount(len(players)); err != nil {
		return nil, err
	}
	seen := make(map[core.PlayerID]bool, len(players))
	for _, p := range players {
		if seen[p.ID()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID())
		}
		seen[p.ID()] = true
	}

	own := make([]*Player, len(players))
	for i, p := range players {
		own[i] = p.clone()
	}

	g := &Game{
		players: own,
		rules:   rules,
		policy:  RandomPolicy{},
		damage:  DefaultDamage,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		WithSeed(time.Now().UnixNano())(g)
	}
	g.deal()
	return g, nil
}

// SeatID returns the player ID used for seat i (0-based): "p1", "p2", "p3".
func SeatID(i int) core.PlayerID {
	return core.PlayerID(fmt.Sprintf("p%d", i+1))
}

// NewFromConfig creates a game from runtime config, seeding the random
// source from cfg.Seed. Options are applied after the config.
func NewFromConfig(cfg core.RuntimeConfig, opts ...Option) (*Game, error) {
	players := make([]*Player, 0, len(cfg.Names))
	for i, name := range cfg.Names {
		players = append(players, NewPlayer(SeatID(i), name))
	}

	base := []Option{WithSeed(cfg.Seed), WithPolicy(cfg.Policy)}
	for _, o := range cfg.Observers {
		base = append(base, WithObserver(o))
	}
	if cfg.Strict {
		base = append(base, WithStrictActions())
	}

	return New(players, RulesConfig{
		WinningScore: cfg.WinningScore,
		MaxTurns:     cfg.MaxTurns,
	}, append(base, opts...)...)
}

func init() {
	registry.Register(VariantClassic, func(cfg core.RuntimeConfig) (registry.Game, error) {
		return NewFromConfig(cfg)
	})
	registry.Register(VariantCards, func(cfg core.RuntimeConfig) (registry.Game, error) {
		return NewFromConfig(cfg, WithDeck(NewDeck()))
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	if g.deck != nil {
		return VariantCards
	}
	return VariantClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.deck != nil {
		return "Trio Arena (Cards)"
	}
	return "Trio Arena"
}

// Rules returns the rules in use.
func (g *Game) Rules() *Rules {
	return g.rules
}

// PlayTurn plays one full rotation. Seats always act in order starting from
// the first, whatever NextTurn was called in between. The win
// condition is checked after every action; a winner ends the game at once
// and the remaining seats do not act. Returns ErrGameOver once terminal.
func (g *Game) PlayTurn() (core.TurnResult, error) {
	if g.over {
		return core.TurnResult{State: g.State()}, ErrGameOver
	}

	g.emit(core.TurnStarted{Turn: g.turn})

	acted := 0
	for i, p := range g.players {
		g.current = i
		if err := g.act(p); err != nil {
			// The next turn starts over from the first seat.
			g.current = 0
			return core.TurnResult{State: g.State(), Acted: acted}, err
		}
		acted++

		if id, ok := g.rules.CheckWinCondition(g.Scores()); ok {
			g.finish(id, core.EndReasonWinner)
			return core.TurnResult{State: g.State(), Acted: acted}, nil
		}
	}

	g.current = 0
	g.turn++
	if g.rules.IsGameOver(g.turn, g.Scores()) {
		g.finish("", core.EndReasonTurnLimit)
	}
	return core.TurnResult{State: g.State(), Acted: acted}, nil
}

// act resolves one seat's action.
func (g *Game) act(actor *Player) error {
	// A guard only lasts until the guarding player acts again.
	actor.guarding = false

	d := g.policy.Decide(g.State(), actor.ID(), g.rng)
	switch d.Action {
	case core.ActionAttack:
		g.attack(actor, d)
	case core.ActionDefend:
		actor.guarding = true
		g.emit(core.ActionResolved{Turn: g.turn, Actor: actor.ID(), Action: d.Action})
	case core.ActionSpecial:
		g.special(actor)
	default:
		err := fmt.Errorf("%w: %q", core.ErrUnknownAction, d.Action)
		g.emit(core.InvalidAction{Turn: g.turn, Actor: actor.ID(), Action: d.Action, Err: err})
		if g.strict {
			return err
		}
	}
	return nil
}

func (g *Game) attack(actor *Player, d core.Decision) {
	target := g.target(actor, d.Target)

	dmg := d.Damage
	if dmg <= 0 {
		dmg = g.damage(actor, target, g.rng)
	}
	if dmg < 0 {
		dmg = 0
	}

	target.AddScore(-dmg)
	target.guarding = false
	actor.AddScore(dmg)

	g.emit(core.ActionResolved{
		Turn:   g.turn,
		Actor:  actor.ID(),
		Action: core.ActionAttack,
		Target: target.ID(),
		Damage: dmg,
	})
}

// target returns the requested opponent, or a uniformly random one when the
// request is empty, the actor itself, or not seated.
func (g *Game) target(actor *Player, want core.PlayerID) *Player {
	others := make([]*Player, 0, len(g.players)-1)
	for _, p := range g.players {
		if p == actor {
			continue
		}
		if want != "" && p.ID() == want {
			return p
		}
		others = append(others, p)
	}
	return core.Pick(g.rng, others)
}

func (g *Game) special(actor *Player) {
	ev := core.ActionResolved{
		Turn:   g.turn,
		Actor:  actor.ID(),
		Action: core.ActionSpecial,
		Effect: SpecialEffect(g.rng),
	}
	if g.deck != nil {
		if len(actor.hand) == 0 {
			ev.Err = ErrItemNotFound
		} else if card, ok := actor.RemoveFromHand(actor.hand[0]); ok {
			ev.Card = card
			actor.AddScore(CardValue(card))
		}
	}
	g.emit(ev)

	scores := g.Scores()
	before, _ := scores.Get(actor.ID())
	if g.rules.ApplySpecialRule(actor.ID(), scores) {
		after, _ := scores.Get(actor.ID())
		actor.AddScore(after - before)
		g.emit(core.SpecialRuleApplied{Turn: g.turn, Player: actor.ID(), Before: before, After: after})
	}
}

func (g *Game) finish(winner core.PlayerID, reason core.EndReason) {
	g.over = true
	g.winner = winner
	g.hasWinner = winner != ""
	g.reason = reason
	g.emit(core.GameOver{Turn: g.turn, Winner: winner, Reason: reason, Scores: g.Scores()})
}

// NextTurn advances the current seat cyclically and returns the new index.
// It does nothing once the game is over.
func (g *Game) NextTurn() int {
	if !g.over {
		g.current = (g.current + 1) % len(g.players)
	}
	return g.current
}

// CurrentPlayer returns the seat that acts next.
func (g *Game) CurrentPlayer() core.PlayerState {
	return g.players[g.current].State()
}

// Players returns snapshots of all seats in order.
func (g *Game) Players() []core.PlayerState {
	out := make([]core.PlayerState, len(g.players))
	for i, p := range g.players {
		out[i] = p.State()
	}
	return out
}

// Player returns a snapshot of the player with the given ID.
func (g *Game) Player(id core.PlayerID) (core.PlayerState, bool) {
	if p := g.find(id); p != nil {
		return p.State(), true
	}
	return core.PlayerState{}, false
}

// Scores returns the score table in seat order.
func (g *Game) Scores() core.Scores {
	s := make(core.Scores, len(g.players))
	for i, p := range g.players {
		s[i] = core.PlayerScore{ID: p.ID(), Score: p.Score()}
	}
	return s
}

// AddScore adjusts a player's score from outside the turn loop.
// Rejected once the game is over.
func (g *Game) AddScore(id core.PlayerID, points int) error {
	if g.over {
		return ErrGameOver
	}
	p := g.find(id)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	p.AddScore(points)
	return nil
}

// Winner returns the winner, if the game ended by reaching the winning score.
func (g *Game) Winner() (core.PlayerID, bool) {
	return g.winner, g.hasWinner
}

// Over reports whether the game is in its terminal state.
func (g *Game) Over() bool {
	return g.over
}

// Turn returns the number of completed rotations.
func (g *Game) Turn() int {
	return g.turn
}

// Reset returns every seat and the turn counter to their initial state and
// clears the terminal flag. The cards variant deals a fresh hand.
func (g *Game) Reset() {
	for _, p := range g.players {
		p.Reset()
	}
	g.current = 0
	g.turn = 0
	g.over = false
	g.winner = ""
	g.hasWinner = false
	g.reason = core.EndReasonNone
	g.deal()
	g.emit(core.GameReset{})
}

// State returns a snapshot of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Players:  g.Players(),
		Current:  g.current,
		Turn:     g.turn,
		Over:     g.over,
		Winner:   g.winner,
		HasWin:   g.hasWinner,
		Reason:   g.reason,
		Scores:   g.Scores(),
		Variant:  g.ID(),
		MaxTurns: g.rules.cfg.MaxTurns,
		Seed:     g.seed,
	}
}

func (g *Game) deal() {
	if g.deck == nil {
		return
	}
	hands := Deal(Shuffle(g.deck, g.rng), len(g.players))
	for i, hand := range hands {
		for _, card := range hand {
			g.players[i].AddToHand(card)
		}
	}
}

func (g *Game) find(id core.PlayerID) *Player {
	for _, p := range g.players {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

func (g *Game) emit(ev core.Event) {
	for _, o := range g.observers {
		o.OnEvent(ev)
	}
}

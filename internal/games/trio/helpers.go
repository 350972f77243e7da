package trio

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/trio/internal/core"
)

// DamageFunc computes the damage of one attack.
type DamageFunc func(attacker, defender *Player, rng core.Rand) int

// Default damage is BaseDamage plus a roll in [0, DamageRoll].
const (
	BaseDamage = 5
	DamageRoll = 10
)

// DefaultDamage rolls BaseDamage+[0,DamageRoll], halved against a guarding defender.
func DefaultDamage(_, defender *Player, rng core.Rand) int {
	dmg := BaseDamage + rng.Intn(DamageRoll+1)
	if defender.Guarding() {
		dmg /= 2
	}
	return dmg
}

// SpecialEffects are the abilities a special action can trigger.
var SpecialEffects = []string{"fireball", "lightning", "heal", "shield"}

// SpecialEffect picks an effect uniformly.
func SpecialEffect(rng core.Rand) string {
	return core.Pick(rng, SpecialEffects)
}

// Leader returns the highest score, earliest seat on ties.
// Returns false for an empty table.
func Leader(scores core.Scores) (core.PlayerScore, bool) {
	if len(scores) == 0 {
		return core.PlayerScore{}, false
	}
	best := scores[0]
	for _, e := range scores[1:] {
		if e.Score > best.Score {
			best = e
		}
	}
	return best, true
}

// Shuffle returns a shuffled copy of items; the input is not modified.
func Shuffle[T any](items []T, rng core.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal splits items round robin into n hands.
func Deal[T any](items []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	hands := make([][]T, n)
	for i, item := range items {
		hands[i%n] = append(hands[i%n], item)
	}
	return hands
}

var (
	deckRanks = []string{"9", "10", "J", "Q", "K", "A"}
	deckSuits = []string{"C", "D", "H", "S"}
)

// NewDeck returns the 24 card deck used by the cards variant, e.g. "10H", "AS".
func NewDeck() []core.Item {
	deck := make([]core.Item, 0, len(deckRanks)*len(deckSuits))
	for _, s := range deckSuits {
		for _, r := range deckRanks {
			deck = append(deck, core.Item(r+s))
		}
	}
	return deck
}

// CardValue returns the points a card scores when played.
// Unknown items are worth nothing.
func CardValue(card core.Item) int {
	s := string(card)
	if len(s) < 2 {
		return 0
	}
	switch rank := s[:len(s)-1]; rank {
	case "J":
		return 2
	case "Q":
		return 3
	case "K":
		return 4
	case "A":
		return 11
	default:
		v, err := strconv.Atoi(rank)
		if err != nil {
			return 0
		}
		return v
	}
}

// Required keys of a move submitted by an input surface.
var moveKeys = []string{"action", "target", "value"}

// ValidateMove checks that a raw move carries every required key.
func ValidateMove(fields map[string]string) error {
	var missing []string
	for _, k := range moveKeys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", ErrInvalidMove, strings.Join(missing, ", "))
	}
	return nil
}

// Move is a validated scripted decision.
type Move struct {
	Action core.Action
	Target core.PlayerID // Empty or "any" picks a random opponent
	Value  int           // Damage override for attacks; 0 uses the damage function
}

// ParseMove validates and converts a raw move.
func ParseMove(fields map[string]string) (Move, error) {
	if err := ValidateMove(fields); err != nil {
		return Move{}, err
	}
	action, err := core.ParseAction(fields["action"])
	if err != nil {
		return Move{}, err
	}
	var value int
	if raw := strings.TrimSpace(fields["value"]); raw != "" {
		value, err = strconv.Atoi(raw)
		if err != nil {
			return Move{}, fmt.Errorf("%w: value %q is not a number", ErrInvalidMove, raw)
		}
		if value < 0 {
			return Move{}, fmt.Errorf("%w: value must not be negative, got %d", ErrInvalidMove, value)
		}
	}
	target := core.PlayerID(strings.TrimSpace(fields["target"]))
	if target == "any" {
		target = ""
	}
	return Move{Action: action, Target: target, Value: value}, nil
}

// Decision converts the move for a policy.
func (m Move) Decision() core.Decision {
	return core.Decision{Action: m.Action, Target: m.Target, Damage: m.Value}
}

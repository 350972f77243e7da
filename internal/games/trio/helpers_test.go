package trio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/trio/internal/core"
)

// fixedRand always draws the same value, clamped to the range.
type fixedRand struct {
	v int
}

func (r fixedRand) Intn(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

func TestDefaultDamage(t *testing.T) {
	attacker := NewPlayer("p1", "A")
	defender := NewPlayer("p2", "B")

	assert.Equal(t, BaseDamage, DefaultDamage(attacker, defender, fixedRand{0}))
	assert.Equal(t, BaseDamage+DamageRoll, DefaultDamage(attacker, defender, fixedRand{99}))

	defender.guarding = true
	assert.Equal(t, (BaseDamage+DamageRoll)/2, DefaultDamage(attacker, defender, fixedRand{99}))
}

func TestDefaultDamageRange(t *testing.T) {
	rng := core.NewRand(3)
	a, d := NewPlayer("p1", "A"), NewPlayer("p2", "B")
	for i := 0; i < 200; i++ {
		dmg := DefaultDamage(a, d, rng)
		require.GreaterOrEqual(t, dmg, BaseDamage)
		require.LessOrEqual(t, dmg, BaseDamage+DamageRoll)
	}
}

func TestSpecialEffect(t *testing.T) {
	assert.Equal(t, SpecialEffects[0], SpecialEffect(fixedRand{0}))
	assert.Contains(t, SpecialEffects, SpecialEffect(core.NewRand(9)))
}

func TestShuffleKeepsElements(t *testing.T) {
	deck := NewDeck()
	shuffled := Shuffle(deck, core.NewRand(1))

	assert.Len(t, shuffled, len(deck))
	assert.ElementsMatch(t, deck, shuffled)
	assert.Equal(t, NewDeck(), deck, "input must not be modified")
}

func TestShuffleDeterministic(t *testing.T) {
	a := Shuffle(NewDeck(), core.NewRand(5))
	b := Shuffle(NewDeck(), core.NewRand(5))
	assert.Equal(t, a, b)
}

func TestDeal(t *testing.T) {
	hands := Deal([]int{1, 2, 3, 4, 5, 6, 7}, 3)

	require.Len(t, hands, 3)
	assert.Equal(t, []int{1, 4, 7}, hands[0])
	assert.Equal(t, []int{2, 5}, hands[1])
	assert.Equal(t, []int{3, 6}, hands[2])

	assert.Nil(t, Deal([]int{1}, 0))
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	assert.Len(t, deck, 24)

	seen := make(map[core.Item]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestCardValue(t *testing.T) {
	tests := map[core.Item]int{
		"9C":  9,
		"10H": 10,
		"JD":  2,
		"QS":  3,
		"KC":  4,
		"AH":  11,
		"X":   0,
		"ZZ":  0,
	}
	for card, want := range tests {
		assert.Equal(t, want, CardValue(card), "CardValue(%s)", card)
	}
}

func TestLeader(t *testing.T) {
	l, ok := Leader(scores(10, 30, 30))
	assert.True(t, ok)
	assert.Equal(t, core.PlayerID("P2"), l.ID)
	assert.Equal(t, 30, l.Score)

	_, ok = Leader(nil)
	assert.False(t, ok)
}

func TestValidateMove(t *testing.T) {
	assert.NoError(t, ValidateMove(map[string]string{"action": "attack", "target": "p2", "value": "3"}))

	err := ValidateMove(map[string]string{"action": "attack"})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Contains(t, err.Error(), "target, value")
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove(map[string]string{"action": "Attack", "target": "p3", "value": "12"})
	require.NoError(t, err)
	assert.Equal(t, Move{Action: core.ActionAttack, Target: "p3", Value: 12}, m)

	m, err = ParseMove(map[string]string{"action": "defend", "target": "any", "value": ""})
	require.NoError(t, err)
	assert.Equal(t, Move{Action: core.ActionDefend}, m)

	_, err = ParseMove(map[string]string{"action": "dance", "target": "", "value": ""})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = ParseMove(map[string]string{"action": "attack", "target": "", "value": "lots"})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = ParseMove(map[string]string{"action": "attack", "target": "", "value": "-4"})
	assert.ErrorIs(t, err, ErrInvalidMove)
}

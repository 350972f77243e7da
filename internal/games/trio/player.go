package trio

import (
	"fmt"

	"github.com/vovakirdan/trio/internal/core"
)

// Player is one seat of a game: identity, score and hand.
type Player struct {
	id       core.PlayerID
	name     string
	score    int
	hand     []core.Item
	guarding bool
}

// NewPlayer creates a player with score 0 and an empty hand.
func NewPlayer(id core.PlayerID, name string) *Player {
	return &Player{id: id, name: name}
}

// ID returns the stable player identifier.
func (p *Player) ID() core.PlayerID {
	return p.id
}

// Name returns the display name.
func (p *Player) Name() string {
	return p.name
}

// Score returns the current score.
func (p *Player) Score() int {
	return p.score
}

// Hand returns a copy of the items held.
func (p *Player) Hand() []core.Item {
	out := make([]core.Item, len(p.hand))
	copy(out, p.hand)
	return out
}

// Guarding reports whether the player defended and has not been hit since.
func (p *Player) Guarding() bool {
	return p.guarding
}

// AddScore adds points, which may be negative. There are no bounds.
func (p *Player) AddScore(points int) {
	p.score += points
}

// ResetScore sets the score back to 0.
func (p *Player) ResetScore() {
	p.score = 0
}

// UpdateName replaces the display name.
func (p *Player) UpdateName(name string) {
	p.name = name
}

// AddToHand appends an item to the hand.
func (p *Player) AddToHand(item core.Item) {
	p.hand = append(p.hand, item)
}

// RemoveFromHand removes the first item equal to item.
// Returns false if the hand does not hold it.
func (p *Player) RemoveFromHand(item core.Item) (core.Item, bool) {
	for i, h := range p.hand {
		if h == item {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return h, true
		}
	}
	return "", false
}

// Reset restores the initial score and hand. ID and name are kept.
func (p *Player) Reset() {
	p.score = 0
	p.hand = nil
	p.guarding = false
}

func (p *Player) clone() *Player {
	c := *p
	c.hand = append([]core.Item(nil), p.hand...)
	return &c
}

// State returns a read-only snapshot.
func (p *Player) State() core.PlayerState {
	return core.PlayerState{
		ID:    p.id,
		Name:  p.name,
		Score: p.score,
		Hand:  p.Hand(),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s): %d points, hand %v", p.name, p.id, p.score, p.hand)
}

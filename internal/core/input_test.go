package core

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestControlsShootCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewControls(clock.Now)

	if a, ok := c.Handle(InputShoot); !ok || a != ActionAttack {
		t.Fatalf("first shoot = %v, %v, expected attack, true", a, ok)
	}

	clock.Advance(200 * time.Millisecond)
	if _, ok := c.Handle(InputShoot); ok {
		t.Error("shoot within cooldown should be rejected")
	}

	clock.Advance(300 * time.Millisecond)
	if _, ok := c.Handle(InputShoot); !ok {
		t.Error("shoot after cooldown should be accepted")
	}
}

func TestControlsJumpCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewControls(clock.Now)

	if a, ok := c.Handle(InputJump); !ok || a != ActionDefend {
		t.Fatalf("first jump = %v, %v, expected defend, true", a, ok)
	}

	clock.Advance(999 * time.Millisecond)
	if _, ok := c.Handle(InputJump); ok {
		t.Error("jump within cooldown should be rejected")
	}

	clock.Advance(time.Millisecond)
	if _, ok := c.Handle(InputJump); !ok {
		t.Error("jump at cooldown boundary should be accepted")
	}
}

func TestControlsIndependentCooldowns(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewControls(clock.Now)

	c.Handle(InputShoot)
	if _, ok := c.Handle(InputJump); !ok {
		t.Error("jump should not share the shoot cooldown")
	}
	if a, ok := c.Handle(InputSpecial); !ok || a != ActionSpecial {
		t.Errorf("special = %v, %v, expected special, true", a, ok)
	}
}

func TestControlsDirectionalEvents(t *testing.T) {
	c := NewControls(nil)
	for _, e := range []InputEvent{InputLeft, InputRight, InputNone} {
		if _, ok := c.Handle(e); ok {
			t.Errorf("Handle(%v) should not produce an action", e)
		}
	}
}

func TestControlsHandleFramePriority(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewControls(clock.Now)

	f := NewInputFrame()
	f.Set(InputJump)
	f.Set(InputShoot)

	if a, ok := c.HandleFrame(f); !ok || a != ActionAttack {
		t.Fatalf("HandleFrame() = %v, %v, expected attack", a, ok)
	}

	// Shoot is cooling down, so the jump in the same frame resolves.
	if a, ok := c.HandleFrame(f); !ok || a != ActionDefend {
		t.Errorf("HandleFrame() = %v, %v, expected defend", a, ok)
	}

	f.Clear()
	if f.Has(InputJump) {
		t.Error("Clear() should remove all events")
	}
}

func TestParseInputEvent(t *testing.T) {
	tests := []struct {
		name     string
		expected InputEvent
		ok       bool
	}{
		{"jump", InputJump, true},
		{"shoot", InputShoot, true},
		{"special", InputSpecial, true},
		{"left", InputLeft, true},
		{"bogus", InputNone, false},
	}
	for _, tc := range tests {
		result, ok := ParseInputEvent(tc.name)
		if result != tc.expected || ok != tc.ok {
			t.Errorf("ParseInputEvent(%q) = %v, %v, expected %v, %v", tc.name, result, ok, tc.expected, tc.ok)
		}
	}
}

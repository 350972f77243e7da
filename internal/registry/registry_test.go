package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/trio/internal/core"
)

type stubGame struct {
	id    string
	cfg   core.RuntimeConfig
	turns int
}

func (g *stubGame) ID() string    { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset()        { g.turns = 0 }

func (g *stubGame) PlayTurn() (core.TurnResult, error) {
	g.turns++
	return core.TurnResult{State: g.State(), Acted: 3}, nil
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Turn: g.turns, MaxTurns: g.cfg.MaxTurns, Variant: g.id}
}

var errRejected = errors.New("rejected")

func registerStub(id string) {
	if Exists(id) {
		return
	}
	Register(id, func(cfg core.RuntimeConfig) (Game, error) {
		if cfg.MaxTurns < 0 {
			return nil, errRejected
		}
		return &stubGame{id: id, cfg: cfg}, nil
	})
}

func TestRegisterAndCreate(t *testing.T) {
	registerStub("zz-stub")

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}

	cfg := core.DefaultConfig()
	cfg.MaxTurns = 4
	g, err := Create("zz-stub", cfg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q, expected zz-stub", g.ID())
	}
	if g.State().MaxTurns != 4 {
		t.Errorf("config not passed to factory: MaxTurns = %d", g.State().MaxTurns)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game", core.DefaultConfig())
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
}

func TestCreateFactoryError(t *testing.T) {
	registerStub("zz-stub")

	cfg := core.DefaultConfig()
	cfg.MaxTurns = -1
	_, err := Create("zz-stub", cfg)
	if !errors.Is(err, errRejected) {
		t.Errorf("Create() error = %v, expected wrapped factory error", err)
	}
}

func TestListSortedWithTitles(t *testing.T) {
	registerStub("zz-stub")
	registerStub("zy-stub")

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID > games[i].ID {
			t.Errorf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}

	found := false
	for _, g := range games {
		if g.ID == "zy-stub" {
			found = true
			if g.Title != "Stub zy-stub" {
				t.Errorf("Title = %q, expected %q", g.Title, "Stub zy-stub")
			}
		}
	}
	if !found {
		t.Error("List() missing zy-stub")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	registerStub("zz-stub")

	defer func() {
		if recover() == nil {
			t.Error("Register() with duplicate ID should panic")
		}
	}()
	Register("zz-stub", func(cfg core.RuntimeConfig) (Game, error) {
		return &stubGame{id: "zz-stub"}, nil
	})
}

package registry

import (
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string { return g.id }
func (g fakeGame) Title() string { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig) {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen) {}
func (g fakeGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return fakeGame{id: "test_b"} })
	Register("test_a", func() Game { return fakeGame{id: "test_a"} })

	if !Exists("test_a") {
		t.Errorf("Exists(test_a) = false, expected true")
	}
	if Exists("test_missing") {
		t.Errorf("Exists(test_missing) = true, expected false")
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create(test_b) error = %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("Create(test_b).ID() = %q, expected %q", g.ID(), "test_b")
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create(test_missing) expected error")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	if len(ids) != 2 || ids[0] != "test_a" || ids[1] != "test_b" {
		t.Errorf("List() IDs = %v, expected [test_a test_b]", ids)
	}
	if list[0].Title != "Fake test_a" {
		t.Errorf("List()[0].Title = %q, expected %q", list[0].Title, "Fake test_a")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return fakeGame{id: "test_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID expected panic")
		}
	}()
	Register("test_dup", func() Game { return fakeGame{id: "test_dup"} })
}

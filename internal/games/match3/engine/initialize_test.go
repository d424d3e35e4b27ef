package engine_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

func TestInitializeHasNoMatches(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		cols      int
		typeCount int
	}{
		{"tall board", 8, 8, 6},
		{"compact board", 6, 8, 6},
		{"three types", 8, 8, 3},
		{"single row", 1, 8, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 50; seed++ {
				g, err := engine.Initialize(tc.rows, tc.cols, tc.typeCount, rand.New(rand.NewSource(seed)))
				if err != nil {
					t.Fatalf("Initialize() error = %v", err)
				}
				if g.Rows() != tc.rows || g.Cols() != tc.cols {
					t.Fatalf("Initialize() size = %dx%d, expected %dx%d", g.Rows(), g.Cols(), tc.rows, tc.cols)
				}
				if runs := engine.FindMatches(g); len(runs) != 0 {
					t.Fatalf("seed %d: Initialize() produced %d runs:\n%s", seed, len(runs), g)
				}
				for r := 0; r < g.Rows(); r++ {
					for c := 0; c < g.Cols(); c++ {
						tile := g.At(cell(r, c))
						if tile.IsEmpty() {
							t.Fatalf("seed %d: cell %v is empty", seed, cell(r, c))
						}
						if int(tile.Type) >= tc.typeCount || tile.Kind != engine.KindNormal {
							t.Fatalf("seed %d: cell %v = %+v, out of range", seed, cell(r, c), tile)
						}
					}
				}
			}
		})
	}
}

func TestInitializeDeterministic(t *testing.T) {
	a, err := engine.Initialize(8, 8, 6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	b, err := engine.Initialize(8, 8, 6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed produced different boards:\n%s\n\n%s", a, b)
	}

	c, err := engine.Initialize(8, 8, 6, rand.New(rand.NewSource(43)))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if a.Equal(c) {
		t.Error("different seeds produced identical boards")
	}
}

func TestInitializeRejectsTooFewTypes(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		if _, err := engine.Initialize(8, 8, n, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("Initialize(typeCount=%d) error = nil, expected error", n)
		}
	}
}

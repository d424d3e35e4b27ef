package engine_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

// background returns a rows x cols grid using only types 3..5 where no two
// neighbors share a type, so fixtures can place runs of types 0..2 freely.
func background(t *testing.T, rows, cols int) *engine.Grid {
	t.Helper()
	types := make([][]int, rows)
	for r := range types {
		types[r] = make([]int, cols)
		for c := range types[r] {
			types[r][c] = 3 + (r+c)%3
		}
	}
	g, err := engine.GridFromTypes(types)
	if err != nil {
		t.Fatalf("GridFromTypes() error = %v", err)
	}
	return g
}

func setType(g *engine.Grid, tp engine.TileType, cells ...engine.Cell) {
	for _, c := range cells {
		g.Set(c, engine.NewTile(tp))
	}
}

func setKind(g *engine.Grid, k engine.Kind, cells ...engine.Cell) {
	for _, c := range cells {
		tile := g.At(c)
		tile.Kind = k
		g.Set(c, tile)
	}
}

func cell(r, c int) engine.Cell {
	return engine.Cell{Row: r, Col: c}
}

// countingRand wraps a seeded source and counts draws.
type countingRand struct {
	rng   *rand.Rand
	draws int
}

func newCountingRand(seed int64) *countingRand {
	return &countingRand{rng: rand.New(rand.NewSource(seed))}
}

func (c *countingRand) Intn(n int) int {
	c.draws++
	return c.rng.Intn(n)
}

func sameCells(a, b []engine.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	set := engine.NewCellSet(a...)
	for _, c := range b {
		if !set.Has(c) {
			return false
		}
	}
	return len(set) == len(a)
}

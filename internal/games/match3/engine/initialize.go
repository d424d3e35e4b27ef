package engine

import "fmt"

// MinTypeCount is the smallest type count for which Initialize always finds a
// fitting type for every cell.
const MinTypeCount = 3

// Rand is the random source the engine draws tile types from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Initialize fills a new rows x cols grid with random types in [0, typeCount)
// such that no cell completes a run of three with the two cells before it in
// its row or in its column. Cells are filled in row-major order and a candidate
// type is re-rolled until it fits.
func Initialize(rows, cols, typeCount int, rng Rand) (*Grid, error) {
	// With two types a cell can be blocked by its row and its column at once.
	if typeCount < MinTypeCount {
		return nil, fmt.Errorf("engine: type count %d is below %d", typeCount, MinTypeCount)
	}
	g := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			at := Cell{Row: r, Col: c}
			t := TileType(rng.Intn(typeCount))
			for wouldMatch(g, at, t) {
				t = TileType(rng.Intn(typeCount))
			}
			g.Set(at, NewTile(t))
		}
	}
	return g, nil
}

// wouldMatch reports whether placing t at c forms a run of three with the two
// already-placed cells to its left or above it.
func wouldMatch(g *Grid, c Cell, t TileType) bool {
	if c.Col >= 2 &&
		g.At(Cell{Row: c.Row, Col: c.Col - 1}).Type == t &&
		g.At(Cell{Row: c.Row, Col: c.Col - 2}).Type == t {
		return true
	}
	if c.Row >= 2 &&
		g.At(Cell{Row: c.Row - 1, Col: c.Col}).Type == t &&
		g.At(Cell{Row: c.Row - 2, Col: c.Col}).Type == t {
		return true
	}
	return false
}

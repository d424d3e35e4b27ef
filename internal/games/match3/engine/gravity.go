package engine

// Fall records a tile moving down its column during compaction.
type Fall struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

// Spawn records a fresh tile placed by Refill.
type Spawn struct {
	Cell Cell `json:"cell"`
	Tile Tile `json:"tile"`
}

// SettleReport describes one gravity and refill pass.
type SettleReport struct {
	Falls  []Fall
	Spawns []Spawn
}

// Changed reports whether the pass moved or created anything.
func (r SettleReport) Changed() bool {
	return len(r.Falls) > 0 || len(r.Spawns) > 0
}

// Compact lets every tile fall until it rests on the floor or another tile.
// Columns are handled independently from the bottom row upward, and the
// relative order of tiles within a column is preserved.
func Compact(g *Grid) []Fall {
	var falls []Fall
	for c := 0; c < g.Cols(); c++ {
		for r := g.Rows() - 1; r >= 0; r-- {
			dst := Cell{Row: r, Col: c}
			if !g.At(dst).IsEmpty() {
				continue
			}
			// nearest occupied cell above the gap
			for k := r - 1; k >= 0; k-- {
				src := Cell{Row: k, Col: c}
				if t := g.At(src); !t.IsEmpty() {
					g.Set(dst, t)
					g.Clear(src)
					falls = append(falls, Fall{From: src, To: dst})
					break
				}
			}
		}
	}
	return falls
}

// Refill places a uniformly random normal tile in every empty cell, column by
// column from the top. No anti-match constraint applies, so a refill may
// create new runs.
func Refill(g *Grid, typeCount int, rng Rand) []Spawn {
	var spawns []Spawn
	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < g.Rows(); r++ {
			at := Cell{Row: r, Col: c}
			if !g.At(at).IsEmpty() {
				continue
			}
			t := NewTile(TileType(rng.Intn(typeCount)))
			g.Set(at, t)
			spawns = append(spawns, Spawn{Cell: at, Tile: t})
		}
	}
	return spawns
}

// Settle compacts and then refills g. On a grid with no empty cells it changes
// nothing and draws nothing from rng.
func Settle(g *Grid, typeCount int, rng Rand) SettleReport {
	if g.EmptyCount() == 0 {
		return SettleReport{}
	}
	return SettleReport{
		Falls:  Compact(g),
		Spawns: Refill(g, typeCount, rng),
	}
}

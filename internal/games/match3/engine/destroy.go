package engine

// Removal is one tile taken off the board.
type Removal struct {
	Cell Cell `json:"cell"`
	Tile Tile `json:"tile"`
}

// DestroyReport lists the tiles removed by Destroy, one slice per wave. Wave 0
// is the requested set; each later wave was triggered by specials in the wave
// before it.
type DestroyReport struct {
	Waves [][]Removal
}

// Count returns the total number of tiles removed.
func (r DestroyReport) Count() int {
	n := 0
	for _, w := range r.Waves {
		n += len(w)
	}
	return n
}

// Cells returns every removed cell in removal order.
func (r DestroyReport) Cells() []Cell {
	out := make([]Cell, 0, r.Count())
	for _, w := range r.Waves {
		for _, rm := range w {
			out = append(out, rm.Cell)
		}
	}
	return out
}

// Secondary returns the number of tiles removed by chain reactions.
func (r DestroyReport) Secondary() int {
	if len(r.Waves) == 0 {
		return 0
	}
	return r.Count() - len(r.Waves[0])
}

// Destroy empties every occupied cell of cells and follows chain reactions:
// a special tile removed in one wave adds its blast area to the next wave, and
// only cells still occupied at that point are processed. Empty or
// out-of-bounds cells are skipped. Each wave strictly reduces the number of
// occupied cells, so the loop ends on any finite grid.
func Destroy(g *Grid, cells CellSet, rules Rules) DestroyReport {
	var report DestroyReport
	wave := cells.Sorted()

	for len(wave) > 0 {
		next := make(CellSet)
		removed := make([]Removal, 0, len(wave))

		for _, c := range wave {
			t := g.At(c)
			if t.IsEmpty() {
				continue
			}
			g.Clear(c)
			removed = append(removed, Removal{Cell: c, Tile: t})
			for _, hit := range t.Kind.Blast(g, c, rules) {
				next.Add(hit)
			}
		}

		if len(removed) > 0 {
			report.Waves = append(report.Waves, removed)
		}

		wave = wave[:0]
		for _, c := range next.Sorted() {
			if !g.At(c).IsEmpty() {
				wave = append(wave, c)
			}
		}
	}

	return report
}

// ApplyCreations upgrades the tiles at each creation site in place, keeping
// their type. A site emptied by a chain reaction in the meantime is skipped.
// Returns the creations that were applied.
func ApplyCreations(g *Grid, created []Creation) []Creation {
	applied := make([]Creation, 0, len(created))
	for _, cr := range created {
		t := g.At(cr.Cell)
		if t.IsEmpty() {
			continue
		}
		t.Kind = cr.Kind
		g.Set(cr.Cell, t)
		applied = append(applied, cr)
	}
	return applied
}

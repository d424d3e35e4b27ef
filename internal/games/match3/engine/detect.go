package engine

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Axis is the direction a run extends along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Hint classifies a run by the special tile it can produce.
type Hint uint8

const (
	HintNone      Hint = iota // length 3
	HintStriped               // length exactly 4
	HintColorBomb             // length 5 or more
)

func (h Hint) String() string {
	switch h {
	case HintStriped:
		return "striped"
	case HintColorBomb:
		return "color_bomb"
	default:
		return "none"
	}
}

// hintForLength maps a run length to its special-tile hint.
func hintForLength(n int) Hint {
	switch {
	case n >= 5:
		return HintColorBomb
	case n == 4:
		return HintStriped
	default:
		return HintNone
	}
}

// Run is a maximal line of at least MinRun same-typed tiles.
type Run struct {
	Cells []Cell // ordered left to right or top to bottom
	Type  TileType
	Axis  Axis
	Hint  Hint
}

// Len returns the run length.
func (r Run) Len() int { return len(r.Cells) }

// Center returns the creation site for a special tile, Cells[len/2].
func (r Run) Center() Cell { return r.Cells[len(r.Cells)/2] }

// SpecialKind returns the kind this run creates, or KindNormal for plain runs.
// A striped tile clears the axis perpendicular to the run that made it.
func (r Run) SpecialKind() Kind {
	switch r.Hint {
	case HintColorBomb:
		return KindColorBomb
	case HintStriped:
		if r.Axis == Horizontal {
			return KindStripedCol
		}
		return KindStripedRow
	default:
		return KindNormal
	}
}

// FindMatches scans every row left to right and then every column top to bottom
// and returns each maximal run of MinRun or more equal, non-empty types. Runs
// that cross are both reported; merging them is Resolve's job.
func FindMatches(g *Grid) []Run {
	var runs []Run
	for r := 0; r < g.Rows(); r++ {
		runs = scanLine(g, runs, Horizontal, g.Cols(), func(i int) Cell {
			return Cell{Row: r, Col: i}
		})
	}
	for c := 0; c < g.Cols(); c++ {
		runs = scanLine(g, runs, Vertical, g.Rows(), func(i int) Cell {
			return Cell{Row: i, Col: c}
		})
	}
	return runs
}

// HasMatches reports whether any run exists without collecting them.
func HasMatches(g *Grid) bool {
	return len(FindMatches(g)) > 0
}

// scanLine walks one row or column of length n and appends its runs.
func scanLine(g *Grid, runs []Run, axis Axis, n int, at func(i int) Cell) []Run {
	start := 0
	for i := 1; i <= n; i++ {
		prev := g.At(at(i - 1))
		if i < n {
			cur := g.At(at(i))
			if !cur.IsEmpty() && cur.Type == prev.Type {
				continue
			}
		}
		// boundary: [start, i) is one stretch of equal types
		if length := i - start; length >= MinRun && !prev.IsEmpty() {
			cells := make([]Cell, 0, length)
			for k := start; k < i; k++ {
				cells = append(cells, at(k))
			}
			runs = append(runs, Run{
				Cells: cells,
				Type:  prev.Type,
				Axis:  axis,
				Hint:  hintForLength(length),
			})
		}
		start = i
	}
	return runs
}

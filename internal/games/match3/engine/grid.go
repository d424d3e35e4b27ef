package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Cell addresses a grid slot by row (top = 0) and column (left = 0).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a rows x cols board stored row-major. It is the single owner of
// every live tile.
type Grid struct {
	rows  int
	cols  int
	cells []Tile
}

// NewGrid creates a grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Tile, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g
}

// GridFromTypes builds a grid of normal tiles from a row-major type matrix.
// A negative type produces an empty cell. Rows must all have the same length.
func GridFromTypes(types [][]int) (*Grid, error) {
	rows := len(types)
	cols := 0
	if rows > 0 {
		cols = len(types[0])
	}
	g := NewGrid(rows, cols)
	for r, line := range types {
		if len(line) != cols {
			return nil, fmt.Errorf("engine: row %d has %d cells, expected %d", r, len(line), cols)
		}
		for c, t := range line {
			if t < 0 {
				continue
			}
			typ, ok := tileTypeOf(t)
			if !ok {
				return nil, fmt.Errorf("engine: type %d out of range at (%d,%d)", t, r, c)
			}
			g.Set(Cell{Row: r, Col: c}, NewTile(typ))
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c addresses a slot of this grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the occupant of c, or Empty when c is out of bounds.
func (g *Grid) At(c Cell) Tile {
	if !g.InBounds(c) {
		return Empty
	}
	return g.cells[c.Row*g.cols+c.Col]
}

// Set places t at c. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Cell, t Tile) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.Row*g.cols+c.Col] = t
}

// Clear empties c and returns what was there.
func (g *Grid) Clear(c Cell) Tile {
	t := g.At(c)
	g.Set(c, Empty)
	return t
}

// Swap exchanges the occupants of a and b.
// Returns false without touching the grid if either cell is out of bounds.
func (g *Grid) Swap(a, b Cell) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	ta, tb := g.At(a), g.At(b)
	g.Set(a, tb)
	g.Set(b, ta)
	return true
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: make([]Tile, len(g.cells)),
	}
	copy(clone.cells, g.cells)
	return clone
}

// Equal reports whether both grids have the same shape and occupants.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, t := range g.cells {
		if t.IsEmpty() {
			n++
		}
	}
	return n
}

// String renders the grid as rows of type digits, '.' for empty cells and a
// kind suffix letter for specials. Used in test failure messages.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			t := g.At(Cell{Row: r, Col: c})
			if t.IsEmpty() {
				sb.WriteString(". ")
				continue
			}
			sb.WriteString(fmt.Sprintf("%d", t.Type))
			switch t.Kind {
			case KindStripedRow:
				sb.WriteByte('r')
			case KindStripedCol:
				sb.WriteByte('c')
			case KindWrapped:
				sb.WriteByte('w')
			case KindColorBomb:
				sb.WriteByte('b')
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// NewCellSet returns a set containing cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Add inserts c.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Remove deletes c.
func (s CellSet) Remove(c Cell) { delete(s, c) }

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sortCells(out)
	return out
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

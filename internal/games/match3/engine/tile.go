// Package engine implements the match-resolution core of the tile-matching game:
// board initialization, run detection, resolution into destruction and special
// tiles, chain reactions, gravity and refill.
//
// Everything here is synchronous and free of rendering or timing concerns. Each
// phase takes a *Grid it owns for the duration of the call and returns a report
// describing what happened, so a presentation layer can replay it at its own pace.
package engine

// TileType is the color identity used for match comparison.
type TileType int8

// NoType marks an empty cell.
const NoType TileType = -1

// Kind is the behavioral variant of a tile.
type Kind uint8

const (
	KindNormal     Kind = iota
	KindStripedRow      // clears its whole row when destroyed
	KindStripedCol      // clears its whole column when destroyed
	KindWrapped         // clears the surrounding square when destroyed
	KindColorBomb       // clears a square of configurable radius when destroyed
)

// blastFunc returns the cells a tile of some kind destroys as a side effect of
// being destroyed at cell c.
type blastFunc func(g *Grid, c Cell, rules Rules) []Cell

type kindInfo struct {
	name  string
	blast blastFunc
}

// kinds is the behavior table for every tile kind.
var kinds = [...]kindInfo{
	KindNormal:     {name: "normal"},
	KindStripedRow: {name: "striped_row", blast: rowBlast},
	KindStripedCol: {name: "striped_col", blast: colBlast},
	KindWrapped: {name: "wrapped", blast: func(g *Grid, c Cell, rules Rules) []Cell {
		return squareBlast(g, c, rules.WrappedRadius)
	}},
	KindColorBomb: {name: "color_bomb", blast: func(g *Grid, c Cell, rules Rules) []Cell {
		return squareBlast(g, c, rules.ColorBombRadius)
	}},
}

// String returns the stable name of the kind, used in fixtures and the API.
func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k].name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, info := range kinds {
		if info.name == s {
			return Kind(k), true
		}
	}
	return KindNormal, false
}

// IsSpecial reports whether the kind has a secondary effect.
func (k Kind) IsSpecial() bool {
	return k != KindNormal && int(k) < len(kinds)
}

// Blast returns the secondary destruction area of a tile of this kind at c.
// Normal tiles return nil.
func (k Kind) Blast(g *Grid, c Cell, rules Rules) []Cell {
	if int(k) >= len(kinds) || kinds[k].blast == nil {
		return nil
	}
	return kinds[k].blast(g, c, rules)
}

// Tile is the occupant of a grid cell. Position is implied by the slot it lives in.
type Tile struct {
	Type TileType
	Kind Kind
}

// Empty is the zero occupant of a cell.
var Empty = Tile{Type: NoType}

// NewTile returns a normal tile of the given type.
func NewTile(t TileType) Tile {
	return Tile{Type: t, Kind: KindNormal}
}

// IsEmpty reports whether the slot holds no tile.
func (t Tile) IsEmpty() bool {
	return t.Type == NoType
}

func rowBlast(g *Grid, c Cell, _ Rules) []Cell {
	out := make([]Cell, 0, g.Cols())
	for col := 0; col < g.Cols(); col++ {
		out = append(out, Cell{Row: c.Row, Col: col})
	}
	return out
}

func colBlast(g *Grid, c Cell, _ Rules) []Cell {
	out := make([]Cell, 0, g.Rows())
	for row := 0; row < g.Rows(); row++ {
		out = append(out, Cell{Row: row, Col: c.Col})
	}
	return out
}

// squareBlast returns the (2r+1)x(2r+1) square around c, clipped to the grid.
func squareBlast(g *Grid, c Cell, radius int) []Cell {
	if radius < 0 {
		radius = 0
	}
	var out []Cell
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			n := Cell{Row: c.Row + dr, Col: c.Col + dc}
			if g.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// tileTypeOf converts a decoded type number, rejecting values a TileType
// cannot hold.
func tileTypeOf(n int) (TileType, bool) {
	if n < 0 || n > math.MaxInt8 {
		return NoType, false
	}
	return TileType(n), true
}

// tileJSON is the fixture form of a tile: {"type":2,"kind":"striped_row"}.
type tileJSON struct {
	Type int    `json:"type"`
	Kind string `json:"kind"`
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("engine: unknown tile kind %q", text)
	}
	*k = parsed
	return nil
}

// MarshalJSON encodes a tile as {type, kind}, or null when empty.
func (t Tile) MarshalJSON() ([]byte, error) {
	if t.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(tileJSON{Type: int(t.Type), Kind: t.Kind.String()})
}

// MarshalJSON encodes the grid as a 2D array of tiles, row by row.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]Tile, g.rows)
	for r := range rows {
		rows[r] = g.cells[r*g.cols : (r+1)*g.cols]
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes the 2D array produced by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]*tileJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("engine: decode grid: %w", err)
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	out := NewGrid(len(rows), cols)
	for r, line := range rows {
		if len(line) != cols {
			return fmt.Errorf("engine: decode grid: row %d has %d cells, expected %d", r, len(line), cols)
		}
		for c, tj := range line {
			if tj == nil {
				continue
			}
			kind, ok := ParseKind(tj.Kind)
			if !ok {
				return fmt.Errorf("engine: decode grid: unknown kind %q at (%d,%d)", tj.Kind, r, c)
			}
			typ, ok := tileTypeOf(tj.Type)
			if !ok {
				return fmt.Errorf("engine: decode grid: type %d out of range at (%d,%d)", tj.Type, r, c)
			}
			out.Set(Cell{Row: r, Col: c}, Tile{Type: typ, Kind: kind})
		}
	}
	*g = *out
	return nil
}

// kindSuffix maps the single-letter suffixes used by Grid.String.
var kindSuffix = map[byte]Kind{
	'r': KindStripedRow,
	'c': KindStripedCol,
	'w': KindWrapped,
	'b': KindColorBomb,
}

// ParseGrid reads the text form written by Grid.String: one line per row,
// whitespace-separated cells, '.' for empty, a type number optionally followed
// by r, c, w or b for striped-row, striped-col, wrapped and color-bomb tiles.
// Blank lines are ignored.
func ParseGrid(text string) (*Grid, error) {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	g := NewGrid(len(rows), cols)
	for r, fields := range rows {
		if len(fields) != cols {
			return nil, fmt.Errorf("engine: parse grid: row %d has %d cells, expected %d", r, len(fields), cols)
		}
		for c, f := range fields {
			if f == "." {
				continue
			}
			kind := KindNormal
			if k, ok := kindSuffix[f[len(f)-1]]; ok {
				kind = k
				f = f[:len(f)-1]
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("engine: parse grid: bad cell %q at (%d,%d)", fields[c], r, c)
			}
			typ, ok := tileTypeOf(n)
			if !ok {
				return nil, fmt.Errorf("engine: parse grid: type %d out of range at (%d,%d)", n, r, c)
			}
			g.Set(Cell{Row: r, Col: c}, Tile{Type: typ, Kind: kind})
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures known to be valid.
func MustParseGrid(text string) *Grid {
	g, err := ParseGrid(text)
	if err != nil {
		panic(err)
	}
	return g
}

package engine_test

import (
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

const mixedFixture = `
	0  1r 2
	.  3w 4c
	5b .  0
`

func TestParseGrid(t *testing.T) {
	g, err := engine.ParseGrid(mixedFixture)
	if err != nil {
		t.Fatalf("ParseGrid() error = %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("ParseGrid() size = %dx%d, expected 3x3", g.Rows(), g.Cols())
	}

	tests := []struct {
		at       engine.Cell
		expected engine.Tile
	}{
		{cell(0, 0), engine.Tile{Type: 0, Kind: engine.KindNormal}},
		{cell(0, 1), engine.Tile{Type: 1, Kind: engine.KindStripedRow}},
		{cell(1, 0), engine.Empty},
		{cell(1, 1), engine.Tile{Type: 3, Kind: engine.KindWrapped}},
		{cell(1, 2), engine.Tile{Type: 4, Kind: engine.KindStripedCol}},
		{cell(2, 0), engine.Tile{Type: 5, Kind: engine.KindColorBomb}},
		{cell(2, 1), engine.Empty},
	}
	for _, tc := range tests {
		if got := g.At(tc.at); got != tc.expected {
			t.Errorf("At(%v) = %+v, expected %+v", tc.at, got, tc.expected)
		}
	}
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ragged rows", "0 1 2\n3 4"},
		{"not a number", "0 x 2"},
		{"unknown suffix", "0 1z 2"},
		{"negative", "0 -1 2"},
		{"type 255", "0 1 255"},
		{"type 256", "256 1 2"},
		{"type 300", "0 1 2\n300 2 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := engine.ParseGrid(tc.input); err == nil {
				t.Errorf("ParseGrid(%q) expected error", tc.input)
			}
		})
	}
}

func TestGridStringRoundTrip(t *testing.T) {
	g := engine.MustParseGrid(mixedFixture)

	back, err := engine.ParseGrid(g.String())
	if err != nil {
		t.Fatalf("ParseGrid(String()) error = %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("ParseGrid(String()) =\n%s\nexpected\n%s", back, g)
	}
}

func TestGridJSON(t *testing.T) {
	g := engine.MustParseGrid(mixedFixture)

	data, err := jsoniter.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `{"type":1,"kind":"striped_row"}`) {
		t.Errorf("Marshal() = %s, expected striped_row tile", s)
	}
	if !strings.Contains(s, "null") {
		t.Errorf("Marshal() = %s, expected null for empty cells", s)
	}

	var back engine.Grid
	if err := jsoniter.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("Unmarshal() =\n%s\nexpected\n%s", &back, g)
	}
}

func TestGridJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ragged", `[[{"type":0,"kind":"normal"}],[]]`},
		{"unknown kind", `[[{"type":0,"kind":"sparkly"}]]`},
		{"not an array", `{"rows":3}`},
		{"type 256", `[[{"type":256,"kind":"normal"}]]`},
		{"negative type", `[[{"type":-5,"kind":"normal"}]]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var g engine.Grid
			if err := jsoniter.Unmarshal([]byte(tc.input), &g); err == nil {
				t.Errorf("Unmarshal(%s) expected error", tc.input)
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []engine.Kind{
		engine.KindNormal, engine.KindStripedRow, engine.KindStripedCol,
		engine.KindWrapped, engine.KindColorBomb,
	} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", k, err)
		}
		var back engine.Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) error = %v", text, err)
		}
		if back != k {
			t.Errorf("UnmarshalText(%s) = %v, expected %v", text, back, k)
		}
	}

	var k engine.Kind
	if err := k.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) expected error")
	}
}

func TestGridFromTypesRange(t *testing.T) {
	if _, err := engine.GridFromTypes([][]int{{0, 1, 128}}); err == nil {
		t.Error("GridFromTypes() with type 128 expected error")
	}
	g, err := engine.GridFromTypes([][]int{{0, -1, 127}})
	if err != nil {
		t.Fatalf("GridFromTypes() error = %v", err)
	}
	if !g.At(cell(0, 1)).IsEmpty() {
		t.Errorf("At(0,1) = %+v, expected empty", g.At(cell(0, 1)))
	}
	if got := g.At(cell(0, 2)).Type; got != 127 {
		t.Errorf("At(0,2).Type = %d, expected 127", got)
	}
}

package engine_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

func TestFindMatchesSingleRowRun(t *testing.T) {
	g := background(t, 8, 8)
	setType(g, 2, cell(3, 2), cell(3, 3), cell(3, 4))

	runs := engine.FindMatches(g)
	if len(runs) != 1 {
		t.Fatalf("FindMatches() returned %d runs, expected 1", len(runs))
	}

	run := runs[0]
	expected := []engine.Cell{cell(3, 2), cell(3, 3), cell(3, 4)}
	for i, c := range expected {
		if run.Cells[i] != c {
			t.Errorf("run.Cells[%d] = %v, expected %v", i, run.Cells[i], c)
		}
	}
	if run.Type != 2 {
		t.Errorf("run.Type = %d, expected 2", run.Type)
	}
	if run.Axis != engine.Horizontal {
		t.Errorf("run.Axis = %v, expected horizontal", run.Axis)
	}
	if run.Hint != engine.HintNone {
		t.Errorf("run.Hint = %v, expected none", run.Hint)
	}
}

func TestFindMatchesHints(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		axis     engine.Axis
		hint     engine.Hint
		kind     engine.Kind
		centerAt int
	}{
		{"horizontal 3", 3, engine.Horizontal, engine.HintNone, engine.KindNormal, 1},
		{"horizontal 4 clears column", 4, engine.Horizontal, engine.HintStriped, engine.KindStripedCol, 2},
		{"vertical 4 clears row", 4, engine.Vertical, engine.HintStriped, engine.KindStripedRow, 2},
		{"horizontal 5", 5, engine.Horizontal, engine.HintColorBomb, engine.KindColorBomb, 2},
		{"vertical 5", 5, engine.Vertical, engine.HintColorBomb, engine.KindColorBomb, 2},
		{"horizontal 8", 8, engine.Horizontal, engine.HintColorBomb, engine.KindColorBomb, 4},
		{"vertical 6", 6, engine.Vertical, engine.HintColorBomb, engine.KindColorBomb, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := background(t, 8, 8)
			for i := 0; i < tc.length; i++ {
				if tc.axis == engine.Horizontal {
					setType(g, 1, cell(4, i))
				} else {
					setType(g, 1, cell(i, 5))
				}
			}

			runs := engine.FindMatches(g)
			if len(runs) != 1 {
				t.Fatalf("FindMatches() returned %d runs, expected 1:\n%s", len(runs), g)
			}
			run := runs[0]
			if run.Len() != tc.length {
				t.Errorf("run.Len() = %d, expected %d", run.Len(), tc.length)
			}
			if run.Axis != tc.axis {
				t.Errorf("run.Axis = %v, expected %v", run.Axis, tc.axis)
			}
			if run.Hint != tc.hint {
				t.Errorf("run.Hint = %v, expected %v", run.Hint, tc.hint)
			}
			if run.SpecialKind() != tc.kind {
				t.Errorf("run.SpecialKind() = %v, expected %v", run.SpecialKind(), tc.kind)
			}
			if run.Center() != run.Cells[tc.centerAt] {
				t.Errorf("run.Center() = %v, expected %v", run.Center(), run.Cells[tc.centerAt])
			}
		})
	}
}

func TestFindMatchesCrossingRunsNotMerged(t *testing.T) {
	g := background(t, 8, 8)
	// T shape sharing (2,3)
	setType(g, 0, cell(2, 1), cell(2, 2), cell(2, 3))
	setType(g, 0, cell(3, 3), cell(4, 3))

	runs := engine.FindMatches(g)
	if len(runs) != 2 {
		t.Fatalf("FindMatches() returned %d runs, expected 2", len(runs))
	}
	if runs[0].Axis != engine.Horizontal || runs[1].Axis != engine.Vertical {
		t.Errorf("runs axes = %v, %v, expected rows before columns", runs[0].Axis, runs[1].Axis)
	}
	for _, run := range runs {
		found := false
		for _, c := range run.Cells {
			if c == cell(2, 3) {
				found = true
			}
		}
		if !found {
			t.Errorf("%v run does not contain the shared cell (2,3)", run.Axis)
		}
	}
}

func TestFindMatchesIgnoresEmptyCells(t *testing.T) {
	g := engine.MustParseGrid(`
		0 0 . 0 0
		. . . . .
		. . . . .
		1 1 1 . 2
	`)

	runs := engine.FindMatches(g)
	if len(runs) != 1 {
		t.Fatalf("FindMatches() returned %d runs, expected 1", len(runs))
	}
	if runs[0].Type != 1 || runs[0].Len() != 3 {
		t.Errorf("run = %+v, expected type 1 length 3", runs[0])
	}
}

func TestFindMatchesSpecialsMatchByType(t *testing.T) {
	g := background(t, 6, 8)
	setType(g, 0, cell(0, 0), cell(0, 1), cell(0, 2))
	setKind(g, engine.KindWrapped, cell(0, 1))

	runs := engine.FindMatches(g)
	if len(runs) != 1 || runs[0].Len() != 3 {
		t.Fatalf("FindMatches() = %+v, expected one run of 3", runs)
	}
}

// TestFindMatchesComplete checks on random boards that every line of three
// equal tiles lies inside exactly one reported run of the same axis, and that
// every reported run is maximal and uniform.
func TestFindMatchesComplete(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := engine.NewGrid(8, 8)
		engine.Refill(g, 3, rng)

		runs := engine.FindMatches(g)

		covered := map[engine.Axis]map[engine.Cell]int{
			engine.Horizontal: {},
			engine.Vertical:   {},
		}
		for _, run := range runs {
			if run.Len() < engine.MinRun {
				t.Fatalf("seed %d: run shorter than %d: %+v", seed, engine.MinRun, run)
			}
			for _, c := range run.Cells {
				if g.At(c).Type != run.Type {
					t.Fatalf("seed %d: run %+v is not uniform at %v", seed, run, c)
				}
				covered[run.Axis][c]++
			}
			first, last := run.Cells[0], run.Cells[run.Len()-1]
			var before, after engine.Cell
			if run.Axis == engine.Horizontal {
				before, after = cell(first.Row, first.Col-1), cell(last.Row, last.Col+1)
			} else {
				before, after = cell(first.Row-1, first.Col), cell(last.Row+1, last.Col)
			}
			if g.InBounds(before) && g.At(before).Type == run.Type {
				t.Fatalf("seed %d: run %+v is not maximal at start", seed, run)
			}
			if g.InBounds(after) && g.At(after).Type == run.Type {
				t.Fatalf("seed %d: run %+v is not maximal at end", seed, run)
			}
		}

		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				tp := g.At(cell(r, c)).Type
				if c+2 < g.Cols() && g.At(cell(r, c+1)).Type == tp && g.At(cell(r, c+2)).Type == tp {
					for k := 0; k < 3; k++ {
						if covered[engine.Horizontal][cell(r, c+k)] != 1 {
							t.Fatalf("seed %d: horizontal line at %v not reported exactly once\n%s", seed, cell(r, c), g)
						}
					}
				}
				if r+2 < g.Rows() && g.At(cell(r+1, c)).Type == tp && g.At(cell(r+2, c)).Type == tp {
					for k := 0; k < 3; k++ {
						if covered[engine.Vertical][cell(r+k, c)] != 1 {
							t.Fatalf("seed %d: vertical line at %v not reported exactly once\n%s", seed, cell(r, c), g)
						}
					}
				}
			}
		}
	}
}

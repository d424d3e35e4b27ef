package config

// presetValues are the per-difficulty overrides. Fewer tile types make
// matches and cascades more likely, so easy boards use fewer of them.
var presetValues = map[DifficultyPreset]struct {
	moves     int
	typeCount int
}{
	DifficultyEasy:   {moves: 40, typeCount: 5},
	DifficultyNormal: {moves: 30, typeCount: 6},
	DifficultyHard:   {moves: 20, typeCount: 7},
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// DifficultyFixed and unknown presets leave it unchanged.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	v, ok := presetValues[preset]
	if !ok {
		return
	}
	cfg.Session.MovesLimit = v.moves
	cfg.Board.TypeCount = v.typeCount
}

// RowsForHeight picks the board height for a terminal of screenH lines.
// A non-zero board.rows always wins.
func (c Match3Config) RowsForHeight(screenH int) int {
	if c.Board.Rows > 0 {
		return c.Board.Rows
	}
	if screenH >= TallRowsMinHeight(c.Board.TallRows) {
		return c.Board.TallRows
	}
	return c.Board.CompactRows
}

// TallRowsMinHeight is the terminal height needed to show rows board rows
// plus the HUD and help line.
func TallRowsMinHeight(rows int) int {
	return rows*2 + 1 + 4
}

package match3

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
	"github.com/vovakirdan/tile-arcade/internal/notify"
)

const (
	cellWidth  = 4 // bracket, glyph, bracket, gap
	cellHeight = 2 // glyph row plus a blank row
	hudHeight  = 3
	minHUDW    = 36
)

var typeColors = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
	core.ColorBrightWhite,
}

var kindGlyphs = map[engine.Kind]rune{
	engine.KindNormal:     '●',
	engine.KindStripedRow: '═',
	engine.KindStripedCol: '║',
	engine.KindWrapped:    '▣',
	engine.KindColorBomb:  '✹',
}

func tileColor(t engine.TileType) core.Color {
	if int(t) >= 0 && int(t) < len(typeColors) {
		return typeColors[t]
	}
	return core.ColorGray
}

func tileGlyph(k engine.Kind) rune {
	if r, ok := kindGlyphs[k]; ok {
		return r
	}
	return '?'
}

// boardLayout places the board on screen.
type boardLayout struct {
	x, y       int // top-left corner of the frame
	w, h       int
	rows, cols int
	minW, minH int
}

func (g *Game) layout() boardLayout {
	board := g.session.Board()
	l := boardLayout{
		rows: board.Rows(),
		cols: board.Cols(),
	}
	l.w = l.cols*cellWidth + 1
	l.h = l.rows*cellHeight + 1
	l.x = (g.screenW - l.w) / 2
	l.y = hudHeight
	l.minW = max(l.w, minHUDW)
	l.minH = hudHeight + l.h + 1
	return l
}

// cellOrigin returns the screen position of a cell's left bracket.
func (l boardLayout) cellOrigin(c engine.Cell) (int, int) {
	return l.x + 1 + c.Col*cellWidth, l.y + 1 + c.Row*cellHeight
}

// cellAt maps a screen position to the board cell drawn there.
func (g *Game) cellAt(x, y int) (engine.Cell, bool) {
	if g.tooSmall {
		return engine.Cell{}, false
	}
	l := g.layout()
	cells := core.NewRect(l.x+1, l.y+1, l.cols*cellWidth, l.rows*cellHeight)
	if !cells.Contains(x, y) {
		return engine.Cell{}, false
	}
	return engine.Cell{Row: (y - cells.Y) / cellHeight, Col: (x - cells.X) / cellWidth}, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderOverlays(dst, l)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", l.minW, l.minH))
}

func (g *Game) renderHUD(dst *core.Screen, l boardLayout) {
	title := g.Title()
	dst.DrawTextWithColor(l.x+(l.w-len([]rune(title)))/2, 0, title, core.ColorBrightCyan)

	dst.DrawText(l.x, 1, fmt.Sprintf("Score: %d", g.displayScore()))

	moves := fmt.Sprintf("Moves: %d", g.session.MovesRemaining())
	movesColor := core.ColorDefault
	if g.session.MovesRemaining() <= 5 {
		movesColor = core.ColorBrightRed
	}
	dst.DrawTextWithColor(l.x+l.w-len(moves), 1, moves, movesColor)

	if g.session.Timed() {
		left := g.session.TimeLeft()
		clock := "Time: " + formatClock(left)
		clockColor := core.ColorDefault
		if left <= 10*time.Second {
			clockColor = core.ColorBrightRed
		}
		dst.DrawTextWithColor(l.x, 2, clock, clockColor)
	}

	if g.status != "" {
		dst.DrawTextWithColor(l.x+l.w-len([]rune(g.status)), 2, g.status, core.ColorBrightYellow)
	}
}

// formatClock renders d as m:ss.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (g *Game) renderBoard(dst *core.Screen, l boardLayout) {
	dst.DrawBoxWithColor(core.Rect{X: l.x, Y: l.y, W: l.w, H: l.h}, core.ColorGray)

	grid := g.play.grid()
	if grid == nil {
		grid = g.session.Board()
	}
	flash := g.play.flashing()
	blinkOff := (g.play.ticks/2)%2 == 1

	for r := range l.rows {
		for c := range l.cols {
			cell := engine.Cell{Row: r, Col: c}
			x, y := l.cellOrigin(cell)
			t := grid.At(cell)

			switch {
			case t.IsEmpty():
			case flash.Has(cell):
				if !blinkOff {
					dst.SetWithColor(x+1, y, '✦', core.ColorBrightWhite)
				}
			default:
				dst.SetWithColor(x+1, y, tileGlyph(t.Kind), tileColor(t.Type))
			}
		}
	}

	if g.play.active() || g.session.Phase() == PhaseGameOver {
		return
	}

	if sel, ok := g.session.Selected(); ok {
		x, y := l.cellOrigin(sel)
		dst.SetWithColor(x, y, '<', core.ColorBrightYellow)
		dst.SetWithColor(x+2, y, '>', core.ColorBrightYellow)
	}
	x, y := l.cellOrigin(g.cursor)
	dst.SetWithColor(x, y, '[', core.ColorBrightWhite)
	dst.SetWithColor(x+2, y, ']', core.ColorBrightWhite)
}

func (g *Game) renderOverlays(dst *core.Screen, l boardLayout) {
	centerX := l.x + l.w/2
	centerY := l.y + l.h/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.State().GameOver {
		reason := "Out of moves"
		if g.session.EndReason() == notify.EndTimeUp {
			reason = "Time's up"
		}
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", reason,
			fmt.Sprintf("Score: %d", g.session.Score()), "Press R to restart")
	}
}

// drawOverlay draws a boxed block of centered lines.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len([]rune(line))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Enter/Space/Click: Select | P: Pause | R: Restart | Q: Quit"
}

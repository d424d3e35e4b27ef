package match3

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/core"
	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
	"github.com/vovakirdan/tile-arcade/internal/notify"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

// Mode selects the session timer.
type Mode string

const (
	ModeWeekly Mode = "weekly"
	ModeDaily  Mode = "daily"
)

// ParseMode converts a mode name, accepting "" as weekly.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeWeekly, "":
		return ModeWeekly, true
	case ModeDaily:
		return ModeDaily, true
	}
	return "", false
}

// GameID is the registry and scoreboard identifier for the mode.
func (m Mode) GameID() string {
	if m == ModeDaily {
		return "match3_daily"
	}
	return "match3"
}

// SessionConfig builds a session for this mode from conf with the given
// number of rows. Bonuses and seed are left for the caller.
func (m Mode) SessionConfig(conf config.Match3Config, rows int) SessionConfig {
	seconds := conf.Session.WeeklySeconds
	if m == ModeDaily {
		seconds = conf.Session.DailySeconds
	}
	return SessionConfig{
		Rows:       rows,
		Cols:       conf.Board.Cols,
		TypeCount:  conf.Board.TypeCount,
		MovesLimit: conf.Session.MovesLimit,
		Duration:   time.Duration(seconds) * time.Second,
		Rules: engine.Rules{
			PointsPerTile:   conf.Scoring.PointsPerTile,
			WrappedRadius:   conf.Specials.WrappedRadius,
			ColorBombRadius: conf.Specials.ColorBombRadius,
		},
	}
}

const statusTicks = 90 // how long a status message stays up

// Package-level config shared by every game instance the registry creates.
var (
	configMu   sync.RWMutex
	gameConfig = config.DefaultMatch3Config()
)

// SetConfig replaces the config used by games reset after this call.
func SetConfig(cfg config.Match3Config) {
	configMu.Lock()
	gameConfig = cfg
	configMu.Unlock()
}

// GetConfig returns the current game config.
func GetConfig() config.Match3Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return gameConfig
}

// Game adapts a Session to the arcade platform: cursor and mouse input,
// timer ticks, cascade playback and rendering.
type Game struct {
	mode Mode
	bus  *notify.Bus
	conf config.Match3Config

	session *Session
	tick    uint64

	tickRate   int
	clockTicks int

	screenW int
	screenH int

	cursor   engine.Cell
	play     playback
	paused   bool
	tooSmall bool

	status      string
	statusTicks int
}

// New creates a weekly-mode match-3 game.
func New() *Game {
	return &Game{mode: ModeWeekly, bus: notify.NewBus()}
}

// NewDaily creates a daily-mode match-3 game.
func NewDaily() *Game {
	return &Game{mode: ModeDaily, bus: notify.NewBus()}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_daily", func() registry.Game {
		return NewDaily()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDaily {
		return "Match-3 (Daily)"
	}
	return "Match-3 (Weekly)"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Bus returns the notification bus. It outlives Reset, so subscribers
// attached once see every game played on this instance.
func (g *Game) Bus() *notify.Bus { return g.bus }

// Session returns the session behind the current game.
func (g *Game) Session() *Session { return g.session }

// Reset deals a new board. Purchased bonuses arrive through
// cfg.ExtraMoves and cfg.ExtraSeconds.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.conf = GetConfig()
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.clockTicks = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.play.stop()
	g.setStatus("")

	s, err := g.newSession(g.sessionConfig(cfg))
	if err != nil {
		log.Error("match3: cannot deal a board", "err", err)
		if g.session == nil {
			return
		}
		s = g.session
	}
	g.session = s

	board := s.Board()
	g.cursor = engine.Cell{Row: board.Rows() / 2, Col: board.Cols() / 2}
	g.checkScreenSize()
}

// newSession starts a session from sc. A config that fails validation falls
// back to the default board with the same seed and clock.
func (g *Game) newSession(sc SessionConfig) (*Session, error) {
	s, err := NewSession(sc, WithPublisher(g.bus))
	if err == nil {
		return s, nil
	}
	log.Warn("match3: invalid session config, using defaults", "err", err)
	fallback := DefaultSessionConfig()
	fallback.Duration = max(sc.Duration, 0)
	fallback.BonusTime = max(sc.BonusTime, 0)
	fallback.BonusMoves = max(sc.BonusMoves, 0)
	fallback.Seed = sc.Seed
	return NewSession(fallback, WithPublisher(g.bus))
}

func (g *Game) sessionConfig(cfg core.RuntimeConfig) SessionConfig {
	sc := g.mode.SessionConfig(g.conf, g.conf.RowsForHeight(cfg.ScreenH))
	sc.BonusMoves = max(cfg.ExtraMoves, 0)
	sc.BonusTime = time.Duration(max(cfg.ExtraSeconds, 0)) * time.Second
	sc.Seed = cfg.Seed
	return sc
}

// Resize adapts the layout to a new terminal size without re-dealing.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.minW || g.screenH < l.minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.session.Phase() == PhaseGameOver
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advanceClock()

	if g.play.active() {
		if g.session.Phase() == PhaseGameOver && g.session.EndReason() == notify.EndTimeUp {
			g.play.stop()
		} else if !g.play.advance(g.conf.Presentation) {
			g.session.SetPresenting(false)
		}
	}

	if g.session.Phase() == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	for _, click := range in.Clicks {
		if c, ok := g.cellAt(click.X, click.Y); ok {
			g.cursor = c
			g.selectCell(c)
		}
	}
	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.selectCell(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

// advanceClock counts whole seconds off a timed session.
func (g *Game) advanceClock() {
	if !g.session.Timed() || g.session.Phase() == PhaseGameOver {
		return
	}
	g.clockTicks++
	if g.clockTicks >= g.tickRate {
		g.clockTicks = 0
		g.session.AdvanceClock(time.Second)
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	board := g.session.Board()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, board.Rows()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, board.Cols()-1)
}

func (g *Game) selectCell(c engine.Cell) {
	res := g.session.Select(c)
	switch {
	case res.Reason == RejectInvalidTarget:
		g.setStatus("Invalid tile")
	case res.Reason == RejectNotAccepting:
		// busy or over; drop the tap
	case res.Swap == nil:
		g.setStatus("")
	case !res.Swap.Matched:
		g.setStatus("No match")
	default:
		g.play.start(res.Swap.Cascades)
		g.session.SetPresenting(true)
		if n := len(res.Swap.Cascades); n > 1 {
			g.setStatus(fmt.Sprintf("+%d  x%d cascade", res.Swap.Points(), n))
		} else {
			g.setStatus(fmt.Sprintf("+%d", res.Swap.Points()))
		}
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = 0
	if msg != "" {
		g.statusTicks = statusTicks
	}
}

// displayScore is the score minus points of cascade steps not yet shown.
func (g *Game) displayScore() int {
	return g.session.Score() - g.play.pendingPoints()
}

// State returns the current game state. A game that ran out of moves is
// only reported over once its last cascade has been shown.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == PhaseGameOver && !g.play.active(),
		Paused:   g.paused || g.tooSmall,
		Busy:     g.play.active(),
	}
}

package match3

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
	"github.com/vovakirdan/tile-arcade/internal/notify"
)

// ErrInvalidConfig is wrapped by NewSession for unusable configurations.
var ErrInvalidConfig = errors.New("match3: invalid session config")

// Phase is the swap state machine's current state.
type Phase int

const (
	PhaseIdle           Phase = iota // waiting for a first selection
	PhaseAwaitingSecond              // one tile selected
	PhaseResolving                   // a swap is being resolved
	PhaseGameOver                    // out of moves or time
)

var phaseNames = [...]string{"idle", "awaiting_second_selection", "resolving", "game_over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// RejectReason explains why a selection or swap was refused.
type RejectReason string

const (
	RejectNone          RejectReason = ""
	RejectInvalidTarget RejectReason = "invalid-target"
	RejectNotAccepting  RejectReason = "not-accepting-input"
)

// SessionConfig configures a new session.
type SessionConfig struct {
	Rows       int
	Cols       int
	TypeCount  int
	MovesLimit int
	BonusMoves int

	// Duration is the base countdown; zero means untimed.
	Duration  time.Duration
	BonusTime time.Duration

	Seed  int64
	Rules engine.Rules

	// Grid, when set, is dealt instead of a random board. It is copied and
	// must be full, use types below TypeCount and hold no run; its shape
	// overrides Rows and Cols.
	Grid *engine.Grid
}

// DefaultSessionConfig returns an untimed 8x8 session with six tile types and
// 30 moves.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Rows:       8,
		Cols:       8,
		TypeCount:  6,
		MovesLimit: 30,
		Rules:      engine.DefaultRules(),
	}
}

func (c SessionConfig) validate() error {
	switch {
	case c.Grid == nil && (c.Rows < 1 || c.Cols < 1):
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	case c.TypeCount < engine.MinTypeCount:
		return fmt.Errorf("%w: type count %d is below %d", ErrInvalidConfig, c.TypeCount, engine.MinTypeCount)
	case c.MovesLimit < 0 || c.BonusMoves < 0:
		return fmt.Errorf("%w: negative moves", ErrInvalidConfig)
	case c.MovesLimit+c.BonusMoves == 0:
		return fmt.Errorf("%w: no moves", ErrInvalidConfig)
	case c.Duration < 0 || c.BonusTime < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	case c.Rules.PointsPerTile <= 0:
		return fmt.Errorf("%w: points per tile %d", ErrInvalidConfig, c.Rules.PointsPerTile)
	}
	if c.Grid != nil {
		return validateGrid(c.Grid, c.TypeCount)
	}
	return nil
}

// validateGrid checks a supplied starting board the way Initialize would
// have dealt it: full, every type below typeCount, and no run at rest.
func validateGrid(g *engine.Grid, typeCount int) error {
	if g.Rows() < 1 || g.Cols() < 1 {
		return fmt.Errorf("%w: starting grid is %dx%d", ErrInvalidConfig, g.Rows(), g.Cols())
	}
	if n := g.EmptyCount(); n > 0 {
		return fmt.Errorf("%w: starting grid has %d empty cells", ErrInvalidConfig, n)
	}
	for r := range g.Rows() {
		for c := range g.Cols() {
			at := engine.Cell{Row: r, Col: c}
			if t := g.At(at).Type; t < 0 || int(t) >= typeCount {
				return fmt.Errorf("%w: type %d at %v is outside 0..%d", ErrInvalidConfig, t, at, typeCount-1)
			}
		}
	}
	if engine.HasMatches(g) {
		return fmt.Errorf("%w: starting grid already has a match", ErrInvalidConfig)
	}
	return nil
}

// SwapOutcome reports what an AttemptSwap did.
type SwapOutcome struct {
	Accepted       bool                 `json:"accepted"`
	Reason         RejectReason         `json:"reason,omitempty"`
	Matched        bool                 `json:"matched"` // false when the swap was reverted
	MovesRemaining int                  `json:"moves_remaining"`
	Score          int                  `json:"score"`
	Cascades       []engine.CascadeStep `json:"cascades"`
}

// Points returns the points awarded across all cascades.
func (o SwapOutcome) Points() int {
	return engine.TotalPoints(o.Cascades)
}

// SelectResult reports what a Select did. Swap is set when the selection
// completed a pair.
type SelectResult struct {
	Phase  Phase
	Reason RejectReason
	Swap   *SwapOutcome
}

// StateView is a read-only snapshot of a session.
type StateView struct {
	Grid           *engine.Grid
	Score          int
	MovesRemaining int
	TimeLeft       time.Duration
	Timed          bool
	Phase          Phase
	Selected       *engine.Cell
	Busy           bool
	EndReason      notify.EndReason
}

// Option customizes a Session.
type Option func(*Session)

// WithPublisher sends session notifications to p.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Session) { s.pub = p }
}

// Session is one game: a board, its score, moves and countdown, and the
// swap state machine. A Session is not safe for concurrent use.
type Session struct {
	cfg SessionConfig
	rng *rand.Rand
	pub notify.Publisher

	grid       *engine.Grid
	score      int
	moves      int
	timeLeft   time.Duration
	phase      Phase
	selected   engine.Cell
	presenting bool
	endReason  notify.EndReason
}

// NewSession validates cfg and deals the first board.
func NewSession(cfg SessionConfig, opts ...Option) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Grid != nil {
		cfg.Grid = cfg.Grid.Clone()
		cfg.Rows, cfg.Cols = cfg.Grid.Rows(), cfg.Grid.Cols()
	}

	s := &Session{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart deals a new board and resets score, moves and time.
func (s *Session) Restart() error {
	return s.deal()
}

func (s *Session) deal() error {
	if s.cfg.Grid != nil {
		s.grid = s.cfg.Grid.Clone()
	} else {
		g, err := engine.Initialize(s.cfg.Rows, s.cfg.Cols, s.cfg.TypeCount, s.rng)
		if err != nil {
			return fmt.Errorf("match3: deal: %w", err)
		}
		s.grid = g
	}

	s.score = 0
	s.moves = s.cfg.MovesLimit + s.cfg.BonusMoves
	s.timeLeft = 0
	if s.Timed() {
		s.timeLeft = s.cfg.Duration + s.cfg.BonusTime
	}
	s.phase = PhaseIdle
	s.presenting = false
	s.endReason = ""

	s.publish(notify.SceneReady{Rows: s.grid.Rows(), Cols: s.grid.Cols()})
	s.publish(notify.ScoreUpdate{Total: 0})
	s.publish(notify.MovesUpdate{Remaining: s.moves})
	return nil
}

// Timed reports whether the session has a countdown.
func (s *Session) Timed() bool {
	return s.cfg.Duration > 0
}

// Accepting reports whether selections and swaps are currently allowed.
func (s *Session) Accepting() bool {
	switch {
	case s.phase == PhaseGameOver, s.phase == PhaseResolving:
		return false
	case s.presenting, s.moves <= 0:
		return false
	case s.Timed() && s.timeLeft <= 0:
		return false
	}
	return true
}

// Select feeds one tile tap into the state machine.
func (s *Session) Select(c engine.Cell) SelectResult {
	if !s.Accepting() {
		return SelectResult{Phase: s.phase, Reason: RejectNotAccepting}
	}
	if !s.validTarget(c) {
		s.phase = PhaseIdle
		s.cue(notify.SoundInvalid)
		return SelectResult{Phase: s.phase, Reason: RejectInvalidTarget}
	}

	switch s.phase {
	case PhaseIdle:
		s.selected = c
		s.phase = PhaseAwaitingSecond
		s.cue(notify.SoundSelect)
	case PhaseAwaitingSecond:
		if c == s.selected {
			s.phase = PhaseIdle
			s.cue(notify.SoundSelect)
			break
		}
		out := s.AttemptSwap(s.selected, c)
		return SelectResult{Phase: s.phase, Reason: out.Reason, Swap: &out}
	}
	return SelectResult{Phase: s.phase}
}

// AttemptSwap swaps the tiles at a and b, which need not be adjacent, and
// resolves the board. An accepted swap always costs one move; a swap that
// makes no match is reverted and scores nothing.
func (s *Session) AttemptSwap(a, b engine.Cell) SwapOutcome {
	if !s.Accepting() {
		return s.outcome(RejectNotAccepting)
	}
	if a == b || !s.validTarget(a) || !s.validTarget(b) {
		s.phase = PhaseIdle
		s.cue(notify.SoundInvalid)
		return s.outcome(RejectInvalidTarget)
	}

	s.phase = PhaseResolving
	s.moves--
	s.publish(notify.MovesUpdate{Remaining: s.moves})
	s.cue(notify.SoundSwap)

	s.grid.Swap(a, b)
	out := SwapOutcome{Accepted: true}

	if engine.HasMatches(s.grid) {
		out.Matched = true
		out.Cascades = engine.Cascade(s.grid, s.cfg.Rules, s.cfg.TypeCount, s.rng)
		if pts := out.Points(); pts > 0 {
			s.score += pts
			s.publish(notify.ScoreUpdate{Total: s.score, Delta: pts})
		}
		s.cue(notify.SoundMatch)
	} else {
		s.grid.Swap(a, b)
		s.cue(notify.SoundInvalid)
	}

	s.phase = PhaseIdle
	if s.moves == 0 {
		s.end(notify.EndOutOfMoves)
	}

	out.MovesRemaining = s.moves
	out.Score = s.score
	return out
}

// AdvanceClock counts d off a timed session. Reaching zero ends the game
// even while a move is being presented; a swap already resolved keeps its
// points.
func (s *Session) AdvanceClock(d time.Duration) {
	if !s.Timed() || s.phase == PhaseGameOver || d <= 0 {
		return
	}
	s.timeLeft -= d
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.end(notify.EndTimeUp)
	}
}

// SetPresenting marks the session busy while a presentation layer plays
// back the last move. Selections are refused until it is cleared.
func (s *Session) SetPresenting(busy bool) {
	s.presenting = busy && s.phase != PhaseGameOver
}

func (s *Session) end(reason notify.EndReason) {
	s.phase = PhaseGameOver
	s.presenting = false
	s.endReason = reason
	s.publish(notify.GameOver{Score: s.score, Reason: reason})
	s.cue(notify.SoundGameOver)
}

func (s *Session) validTarget(c engine.Cell) bool {
	return s.grid.InBounds(c) && !s.grid.At(c).IsEmpty()
}

func (s *Session) outcome(reason RejectReason) SwapOutcome {
	return SwapOutcome{Reason: reason, MovesRemaining: s.moves, Score: s.score}
}

func (s *Session) publish(evt notify.Event) {
	if s.pub != nil {
		s.pub.Publish(evt)
	}
}

func (s *Session) cue(sound notify.Sound) {
	s.publish(notify.Cue{Sound: sound})
}

// State returns a snapshot. The grid is a copy.
func (s *Session) State() StateView {
	v := StateView{
		Grid:           s.grid.Clone(),
		Score:          s.score,
		MovesRemaining: s.moves,
		TimeLeft:       s.timeLeft,
		Timed:          s.Timed(),
		Phase:          s.phase,
		Busy:           s.presenting || s.phase == PhaseResolving,
		EndReason:      s.endReason,
	}
	if s.phase == PhaseAwaitingSecond {
		sel := s.selected
		v.Selected = &sel
	}
	return v
}

// Board returns the live grid for rendering. Callers must not modify it.
func (s *Session) Board() *engine.Grid { return s.grid }

func (s *Session) Score() int              { return s.score }
func (s *Session) MovesRemaining() int     { return s.moves }
func (s *Session) TimeLeft() time.Duration { return s.timeLeft }
func (s *Session) Phase() Phase            { return s.phase }

// Selected returns the first tile of a pending pair.
func (s *Session) Selected() (engine.Cell, bool) {
	return s.selected, s.phase == PhaseAwaitingSecond
}

// EndReason returns why the game ended, or "" while it is running.
func (s *Session) EndReason() notify.EndReason { return s.endReason }

package match3

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
	"github.com/vovakirdan/tile-arcade/internal/notify"
)

// swapFixture has no runs; swapping (0,2) with (2,2) completes type 0 on row 2.
const swapFixture = `
	3 4 0 3 4
	4 5 3 4 5
	0 0 4 5 3
	3 4 5 3 4
	4 5 3 4 5
`

func cell(r, c int) engine.Cell { return engine.Cell{Row: r, Col: c} }

func fixtureSession(t *testing.T, moves int, opts ...Option) *Session {
	t.Helper()
	cfg := DefaultSessionConfig()
	cfg.Grid = engine.MustParseGrid(swapFixture)
	cfg.MovesLimit = moves
	cfg.Seed = 42
	s, err := NewSession(cfg, opts...)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

// recorder collects every event published on a bus.
type recorder struct {
	events []notify.Event
}

func (r *recorder) Publish(evt notify.Event) { r.events = append(r.events, evt) }

func (r *recorder) names() []notify.Name {
	out := make([]notify.Name, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name()
	}
	return out
}

func TestNewSessionDealsStableBoard(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.BonusMoves = 5
	cfg.Seed = 7

	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	st := s.State()
	if st.MovesRemaining != 35 {
		t.Errorf("MovesRemaining = %d, expected 35", st.MovesRemaining)
	}
	if st.Score != 0 || st.Phase != PhaseIdle || st.Timed {
		t.Errorf("State() = %+v, expected idle untimed session at 0", st)
	}
	if st.Grid.Rows() != 8 || st.Grid.Cols() != 8 || st.Grid.EmptyCount() != 0 {
		t.Errorf("board %dx%d with %d empty cells, expected full 8x8", st.Grid.Rows(), st.Grid.Cols(), st.Grid.EmptyCount())
	}
	if engine.HasMatches(st.Grid) {
		t.Errorf("initial board has matches:\n%s", st.Grid)
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SessionConfig)
	}{
		{"two types", func(c *SessionConfig) { c.TypeCount = 2 }},
		{"no rows", func(c *SessionConfig) { c.Rows = 0 }},
		{"no moves", func(c *SessionConfig) { c.MovesLimit = 0 }},
		{"negative bonus", func(c *SessionConfig) { c.BonusMoves = -1 }},
		{"negative duration", func(c *SessionConfig) { c.Duration = -time.Second }},
		{"zero points", func(c *SessionConfig) { c.Rules.PointsPerTile = 0 }},
		{"holes in grid", func(c *SessionConfig) { c.Grid = engine.MustParseGrid("0 1 2\n. 2 0\n0 1 2") }},
		{"empty grid", func(c *SessionConfig) { c.Grid = engine.NewGrid(3, 0) }},
		{"run at rest", func(c *SessionConfig) { c.Grid = engine.MustParseGrid("0 0 0 1\n1 2 3 4\n2 3 4 5\n3 4 5 1") }},
		{"type beyond count", func(c *SessionConfig) { c.Grid = engine.MustParseGrid("0 1 2\n3 4 6\n0 1 2") }},
		{"type at count", func(c *SessionConfig) {
			c.TypeCount = 3
			c.Grid = engine.MustParseGrid("0 1 2\n1 2 3\n0 1 2")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSessionConfig()
			tt.modify(&cfg)
			if _, err := NewSession(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewSession() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSelectSameTileDeselects(t *testing.T) {
	s := fixtureSession(t, 10)

	res := s.Select(cell(1, 1))
	if res.Phase != PhaseAwaitingSecond || res.Reason != RejectNone {
		t.Fatalf("first Select() = %+v, expected awaiting second selection", res)
	}
	if sel, ok := s.Selected(); !ok || sel != cell(1, 1) {
		t.Errorf("Selected() = %v, %v, expected (1,1)", sel, ok)
	}

	res = s.Select(cell(1, 1))
	if res.Phase != PhaseIdle || res.Swap != nil {
		t.Errorf("second Select() = %+v, expected idle without swap", res)
	}
	if s.MovesRemaining() != 10 {
		t.Errorf("MovesRemaining() = %d, expected 10", s.MovesRemaining())
	}
}

func TestSelectPairSwapsAndScores(t *testing.T) {
	s := fixtureSession(t, 10)

	s.Select(cell(0, 2))
	res := s.Select(cell(2, 2))

	if res.Swap == nil {
		t.Fatal("Select() of a second tile did not swap")
	}
	out := *res.Swap
	if !out.Accepted || !out.Matched {
		t.Fatalf("SwapOutcome = %+v, expected accepted match", out)
	}
	if out.MovesRemaining != 9 {
		t.Errorf("MovesRemaining = %d, expected 9", out.MovesRemaining)
	}
	if len(out.Cascades) == 0 || out.Cascades[0].Points != 30 {
		t.Fatalf("first cascade = %+v, expected 30 points", out.Cascades)
	}
	if out.Score != out.Points() || out.Score < 30 {
		t.Errorf("Score = %d, Points() = %d, expected equal and at least 30", out.Score, out.Points())
	}
	if res.Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", res.Phase)
	}

	st := s.State()
	if engine.HasMatches(st.Grid) || st.Grid.EmptyCount() != 0 {
		t.Errorf("board not settled after swap:\n%s", st.Grid)
	}
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	s := fixtureSession(t, 10)
	before := s.State().Grid

	out := s.AttemptSwap(cell(0, 0), cell(4, 4))

	if !out.Accepted || out.Matched {
		t.Errorf("SwapOutcome = %+v, expected accepted and reverted", out)
	}
	if out.MovesRemaining != 9 {
		t.Errorf("MovesRemaining = %d, expected 9 (a reverted swap still costs a move)", out.MovesRemaining)
	}
	if out.Score != 0 || len(out.Cascades) != 0 {
		t.Errorf("reverted swap scored: %+v", out)
	}
	if !s.State().Grid.Equal(before) {
		t.Errorf("grid after reverted swap =\n%s\nexpected\n%s", s.State().Grid, before)
	}
}

func TestSwapInvalidTargets(t *testing.T) {
	tests := []struct {
		name string
		a, b engine.Cell
	}{
		{"same cell", cell(1, 1), cell(1, 1)},
		{"row out of bounds", cell(0, 0), cell(5, 0)},
		{"negative col", cell(0, -1), cell(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixtureSession(t, 10)
			out := s.AttemptSwap(tt.a, tt.b)
			if out.Accepted || out.Reason != RejectInvalidTarget {
				t.Errorf("AttemptSwap() = %+v, expected invalid-target", out)
			}
			if s.MovesRemaining() != 10 || s.Phase() != PhaseIdle {
				t.Errorf("moves %d phase %v, expected 10 and idle", s.MovesRemaining(), s.Phase())
			}
		})
	}

	s := fixtureSession(t, 10)
	s.Select(cell(0, 0))
	if res := s.Select(cell(9, 9)); res.Reason != RejectInvalidTarget || res.Phase != PhaseIdle {
		t.Errorf("Select(out of bounds) = %+v, expected invalid-target and idle", res)
	}
}

func TestOutOfMovesEndsGame(t *testing.T) {
	rec := &recorder{}
	s := fixtureSession(t, 1, WithPublisher(rec))

	out := s.AttemptSwap(cell(0, 0), cell(4, 4))
	if !out.Accepted || out.MovesRemaining != 0 {
		t.Fatalf("AttemptSwap() = %+v, expected accepted with 0 moves left", out)
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v, expected game over", s.Phase())
	}

	out = s.AttemptSwap(cell(0, 2), cell(2, 2))
	if out.Accepted || out.Reason != RejectNotAccepting || out.MovesRemaining != 0 {
		t.Errorf("AttemptSwap() after game over = %+v, expected not-accepting", out)
	}
	if res := s.Select(cell(0, 0)); res.Reason != RejectNotAccepting {
		t.Errorf("Select() after game over = %+v, expected not-accepting", res)
	}

	var over *notify.GameOver
	for _, e := range rec.events {
		if g, ok := e.(notify.GameOver); ok {
			over = &g
		}
	}
	if over == nil || over.Reason != notify.EndOutOfMoves {
		t.Errorf("game-over event = %+v, expected out-of-moves", over)
	}
}

func TestPresentingBlocksInput(t *testing.T) {
	s := fixtureSession(t, 10)

	s.SetPresenting(true)
	if s.Accepting() || !s.State().Busy {
		t.Error("session should be busy while presenting")
	}
	if out := s.AttemptSwap(cell(0, 2), cell(2, 2)); out.Reason != RejectNotAccepting {
		t.Errorf("AttemptSwap() while presenting = %+v, expected not-accepting", out)
	}
	if s.MovesRemaining() != 10 {
		t.Errorf("MovesRemaining() = %d, expected 10", s.MovesRemaining())
	}

	s.SetPresenting(false)
	if out := s.AttemptSwap(cell(0, 2), cell(2, 2)); !out.Accepted {
		t.Errorf("AttemptSwap() after presenting = %+v, expected accepted", out)
	}
}

func TestTimerExpiry(t *testing.T) {
	rec := &recorder{}
	cfg := DefaultSessionConfig()
	cfg.Grid = engine.MustParseGrid(swapFixture)
	cfg.Duration = time.Minute
	cfg.BonusTime = 30 * time.Second
	s, err := NewSession(cfg, WithPublisher(rec))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if s.TimeLeft() != 90*time.Second {
		t.Fatalf("TimeLeft() = %v, expected 1m30s", s.TimeLeft())
	}

	s.SetPresenting(true)
	s.AdvanceClock(89 * time.Second)
	if s.Phase() == PhaseGameOver {
		t.Fatal("game ended before the timer ran out")
	}

	s.AdvanceClock(2 * time.Second)
	st := s.State()
	if st.Phase != PhaseGameOver || st.TimeLeft != 0 || st.EndReason != notify.EndTimeUp {
		t.Errorf("State() = %+v, expected time-up game over with 0 left", st)
	}
	if st.Busy {
		t.Error("timer expiry should clear the busy flag")
	}
	if out := s.AttemptSwap(cell(0, 2), cell(2, 2)); out.Reason != RejectNotAccepting {
		t.Errorf("AttemptSwap() after time up = %+v, expected not-accepting", out)
	}

	events := len(rec.events)
	s.AdvanceClock(time.Second)
	if len(rec.events) != events {
		t.Error("AdvanceClock() after game over published again")
	}
}

func TestUntimedSessionIgnoresClock(t *testing.T) {
	s := fixtureSession(t, 10)
	s.AdvanceClock(time.Hour)
	if s.Phase() == PhaseGameOver {
		t.Error("untimed session ended on AdvanceClock()")
	}
}

func TestSessionNotifications(t *testing.T) {
	rec := &recorder{}
	s := fixtureSession(t, 10, WithPublisher(rec))

	expected := []notify.Name{notify.NameSceneReady, notify.NameScoreUpdate, notify.NameMovesUpdate}
	assertNames(t, rec.names(), expected)

	rec.events = nil
	s.AttemptSwap(cell(0, 2), cell(2, 2))

	expected = []notify.Name{notify.NameMovesUpdate, notify.NameCue, notify.NameScoreUpdate, notify.NameCue}
	assertNames(t, rec.names(), expected)

	if m := rec.events[0].(notify.MovesUpdate); m.Remaining != 9 {
		t.Errorf("moves-update = %d, expected 9", m.Remaining)
	}
	if sc := rec.events[2].(notify.ScoreUpdate); sc.Total != s.Score() || sc.Delta != s.Score() {
		t.Errorf("score-update = %+v, expected total and delta %d", sc, s.Score())
	}
	if c := rec.events[3].(notify.Cue); c.Sound != notify.SoundMatch {
		t.Errorf("last cue = %q, expected match", c.Sound)
	}
}

func assertNames(t *testing.T, got, expected []notify.Name) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("events = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("events[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestRestartResetsSession(t *testing.T) {
	s := fixtureSession(t, 3)
	s.AttemptSwap(cell(0, 2), cell(2, 2))

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	st := s.State()
	if st.Score != 0 || st.MovesRemaining != 3 || st.Phase != PhaseIdle {
		t.Errorf("State() after Restart = %+v", st)
	}
	if !st.Grid.Equal(engine.MustParseGrid(swapFixture)) {
		t.Errorf("Restart() did not redeal the starting grid")
	}
}

// No board is guaranteed to have a legal move. Nine distinct types on a 3x3
// board can never line up, so every swap is reverted until moves run out.
func TestDeadlockedBoardRunsOutOfMoves(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Grid = engine.MustParseGrid("0 1 2\n3 4 5\n6 7 8")
	cfg.TypeCount = 9
	cfg.MovesLimit = 36

	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	swaps := 0
	for i := 0; i < 9; i++ {
		for j := i + 1; j < 9; j++ {
			out := s.AttemptSwap(cell(i/3, i%3), cell(j/3, j%3))
			if !out.Accepted || out.Matched {
				t.Fatalf("swap %d: %+v, expected accepted and reverted", swaps, out)
			}
			swaps++
		}
	}

	if swaps != 36 || s.MovesRemaining() != 0 || s.Score() != 0 {
		t.Errorf("after %d swaps: moves %d score %d, expected 0 and 0", swaps, s.MovesRemaining(), s.Score())
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v, expected game over", s.Phase())
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		cfg := DefaultSessionConfig()
		cfg.Seed = seed
		cfg.MovesLimit = 25
		s, err := NewSession(cfg)
		if err != nil {
			t.Fatalf("NewSession() error = %v", err)
		}
		rng := rand.New(rand.NewSource(seed * 31))

		lastScore, lastMoves := 0, s.MovesRemaining()
		for s.Phase() != PhaseGameOver {
			a := cell(rng.Intn(8), rng.Intn(8))
			b := cell(rng.Intn(8), rng.Intn(8))
			out := s.AttemptSwap(a, b)

			expectedMoves := lastMoves
			if out.Accepted {
				expectedMoves--
			}
			if out.MovesRemaining != expectedMoves {
				t.Fatalf("seed %d: moves %d, expected %d", seed, out.MovesRemaining, expectedMoves)
			}
			if out.Score < lastScore {
				t.Fatalf("seed %d: score went down from %d to %d", seed, lastScore, out.Score)
			}
			st := s.State()
			if engine.HasMatches(st.Grid) || st.Grid.EmptyCount() != 0 {
				t.Fatalf("seed %d: board not at rest:\n%s", seed, st.Grid)
			}
			lastScore, lastMoves = out.Score, out.MovesRemaining
		}
		if lastMoves != 0 {
			t.Errorf("seed %d: game over with %d moves left", seed, lastMoves)
		}
	}
}

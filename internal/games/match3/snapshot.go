package match3

import (
	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Score    int
	Moves    int
	TimeLeft int // whole seconds, 0 when untimed
	Board    string
	Cursor   engine.Cell
	Selected *engine.Cell
	Phase    Phase
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.State().GameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.play.active():
		state = StateResolving
	}

	view := g.session.State()
	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Score:    view.Score,
		Moves:    view.MovesRemaining,
		TimeLeft: int(view.TimeLeft.Seconds()),
		Board:    view.Grid.String(),
		Cursor:   g.cursor,
		Selected: view.Selected,
		Phase:    view.Phase,
		State:    state,
	}
}

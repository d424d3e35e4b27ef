package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/registry"
)

func scoreboardWithModes(t *testing.T, width int) ScoreboardModel {
	t.Helper()
	store, _ := openWallet(t)
	for _, s := range []struct {
		id    string
		score int
	}{
		{"weekly", 120},
		{"weekly", 90},
		{"daily", 45},
	} {
		if _, err := store.SaveScore(s.id, s.score); err != nil {
			t.Fatalf("SaveScore() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, width, 30)
	m.modes = []registry.GameInfo{
		{ID: "weekly", Title: "Weekly"},
		{ID: "daily", Title: "Daily"},
	}
	m.load()
	return m
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected ScoreboardModel", next)
	}
	return sb
}

func TestScoreboardSwitchesModes(t *testing.T) {
	m := scoreboardWithModes(t, 100)

	if len(m.scores) != 2 || m.scores[0].Score != 120 {
		t.Fatalf("weekly scores = %+v, expected 120 then 90", m.scores)
	}
	view := m.View()
	if !strings.Contains(view, "Best: 120") || !strings.Contains(view, "Last played") {
		t.Errorf("View() missing stats panel:\n%s", view)
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != 1 || len(m.scores) != 1 || m.scores[0].Score != 45 {
		t.Errorf("after tab: mode = %d, scores = %+v, expected daily 45", m.mode, m.scores)
	}

	// Wraps around in both directions.
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != 0 {
		t.Errorf("after second tab: mode = %d, expected 0", m.mode)
	}
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.mode != 1 {
		t.Errorf("after shift+tab: mode = %d, expected 1", m.mode)
	}
}

func TestScoreboardNarrowLayout(t *testing.T) {
	m := scoreboardWithModes(t, 50)
	if view := m.View(); !strings.Contains(view, "Best: 120") {
		t.Errorf("View() missing stats line:\n%s", view)
	}
}

func TestScoreboardEmptyAndBack(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	m.modes = []registry.GameInfo{{ID: "weekly", Title: "Weekly"}}
	m.load()

	if view := m.View(); !strings.Contains(view, "No games finished") {
		t.Errorf("View() = %q, expected empty message", view)
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Errorf("after esc: IsGoingBack() = %v, IsQuitting() = %v, expected true, false",
			m.IsGoingBack(), m.IsQuitting())
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("k"), core.ActionUp, false},
		{runeKey("j"), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("h"), core.ActionLeft, false},
		{runeKey("l"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.expected || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.expected, tt.quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press not mapped")
	}
	release := tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(release, &frame) {
		t.Error("release mapped to a click")
	}
	right := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if km.MapMouseToFrame(right, &frame) {
		t.Error("right button mapped to a click")
	}

	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Click{X: 12, Y: 5}) {
		t.Errorf("Clicks = %v, expected [{12 5}]", frame.Clicks)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("$"), MenuActionShop},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

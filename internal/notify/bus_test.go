package notify

import (
	"testing"
)

func TestBusDeliversByName(t *testing.T) {
	bus := NewBus()

	var scores []int
	var all []Name
	bus.Subscribe(NameScoreUpdate, func(e Event) {
		scores = append(scores, e.(ScoreUpdate).Total)
	})
	bus.SubscribeAll(func(e Event) {
		all = append(all, e.Name())
	})

	bus.Publish(ScoreUpdate{Total: 30, Delta: 30})
	bus.Publish(MovesUpdate{Remaining: 29})
	bus.Publish(ScoreUpdate{Total: 70, Delta: 40})

	if len(scores) != 2 || scores[0] != 30 || scores[1] != 70 {
		t.Errorf("score handler got %v, expected [30 70]", scores)
	}
	expected := []Name{NameScoreUpdate, NameMovesUpdate, NameScoreUpdate}
	if len(all) != len(expected) {
		t.Fatalf("all handler got %v, expected %v", all, expected)
	}
	for i := range expected {
		if all[i] != expected[i] {
			t.Errorf("all[%d] = %q, expected %q", i, all[i], expected[i])
		}
	}
}

func TestBusSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 1; i <= 3; i++ {
		bus.Subscribe(NameCue, func(Event) { order = append(order, i) })
	}

	bus.Publish(Cue{Sound: SoundMatch})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("handlers ran in order %v, expected [1 2 3]", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(NameSceneReady, func(Event) { calls++ })
	other := bus.Subscribe(NameSceneReady, func(Event) {})

	bus.Publish(SceneReady{Rows: 8, Cols: 8})
	unsubscribe()
	unsubscribe()
	bus.Publish(SceneReady{Rows: 8, Cols: 8})

	if calls != 1 {
		t.Errorf("handler called %d times, expected 1", calls)
	}
	if bus.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", bus.Len())
	}
	other()
	if bus.Len() != 0 {
		t.Errorf("Len() = %d after removing all, expected 0", bus.Len())
	}
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(NameCue, func(Event) {
		calls++
		unsubscribe()
	})
	bus.Subscribe(NameCue, func(Event) { calls++ })

	bus.Publish(Cue{Sound: SoundSwap})
	bus.Publish(Cue{Sound: SoundSwap})

	if calls != 3 {
		t.Errorf("handlers called %d times, expected 3", calls)
	}
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		evt      Event
		expected string
	}{
		{ScoreUpdate{}, "score-update"},
		{MovesUpdate{}, "moves-update"},
		{SceneReady{}, "scene-ready"},
		{GameOver{}, "game-over"},
		{Cue{}, "cue"},
	}
	for _, tt := range tests {
		if got := string(tt.evt.Name()); got != tt.expected {
			t.Errorf("%T.Name() = %q, expected %q", tt.evt, got, tt.expected)
		}
	}
}

package match3

import (
	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
)

// PlaybackPhase is the part of a cascade step currently on screen.
type PlaybackPhase int

const (
	PlaybackNone    PlaybackPhase = iota
	PlaybackFlash                 // step.Before with destroyed cells blinking
	PlaybackSettled               // step.After
)

// playback walks the steps of the last swap one at a time so the player sees
// each cascade before the board comes to rest.
type playback struct {
	steps []engine.CascadeStep
	index int
	phase PlaybackPhase
	ticks int
}

func (p *playback) start(steps []engine.CascadeStep) {
	p.stop()
	if len(steps) == 0 {
		return
	}
	p.steps = steps
	p.phase = PlaybackFlash
}

func (p *playback) stop() {
	*p = playback{}
}

func (p *playback) active() bool {
	return p.phase != PlaybackNone
}

// advance moves playback forward one tick. Returns false once the last step
// has finished.
func (p *playback) advance(pc config.Match3Presentation) bool {
	if !p.active() {
		return false
	}
	p.ticks++

	switch p.phase {
	case PlaybackFlash:
		if p.ticks >= pc.FlashTicks {
			p.phase = PlaybackSettled
			p.ticks = 0
		}
	case PlaybackSettled:
		if p.ticks >= pc.StepTicks {
			p.index++
			p.ticks = 0
			p.phase = PlaybackFlash
			if p.index >= len(p.steps) {
				p.stop()
				return false
			}
		}
	}
	return true
}

// current returns the step on screen.
func (p *playback) current() (engine.CascadeStep, bool) {
	if !p.active() {
		return engine.CascadeStep{}, false
	}
	return p.steps[p.index], true
}

// grid returns the board to draw while playing back.
func (p *playback) grid() *engine.Grid {
	step, ok := p.current()
	if !ok {
		return nil
	}
	if p.phase == PlaybackFlash {
		return step.Before
	}
	return step.After
}

// flashing returns the cells blinking this tick.
func (p *playback) flashing() engine.CellSet {
	step, ok := p.current()
	if !ok || p.phase != PlaybackFlash {
		return nil
	}
	set := make(engine.CellSet, len(step.Destroyed))
	for _, r := range step.Destroyed {
		set.Add(r.Cell)
	}
	return set
}

// pendingPoints sums the points of steps whose destruction has not been
// shown yet.
func (p *playback) pendingPoints() int {
	if !p.active() {
		return 0
	}
	from := p.index
	if p.phase == PlaybackSettled {
		from++
	}
	return engine.TotalPoints(p.steps[from:])
}

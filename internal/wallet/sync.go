package wallet

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-arcade/internal/notify"
)

// ScoreSync credits score gains to the wallet as they happen. Each
// score-update adds the difference from the last total it saw; a
// scene-ready (new board) starts counting from zero again.
type ScoreSync struct {
	wallet *Wallet
	logger *log.Logger

	mu        sync.Mutex
	lastTotal int
}

// NewScoreSync creates a listener crediting w. Failed writes are logged on
// logger and never interrupt play.
func NewScoreSync(w *Wallet, logger *log.Logger) *ScoreSync {
	if logger == nil {
		logger = log.Default()
	}
	return &ScoreSync{wallet: w, logger: logger}
}

// Attach subscribes to bus and returns a function that detaches again.
func (s *ScoreSync) Attach(bus *notify.Bus) (detach func()) {
	offScore := bus.Subscribe(notify.NameScoreUpdate, s.Handle)
	offScene := bus.Subscribe(notify.NameSceneReady, s.Handle)
	return func() {
		offScore()
		offScene()
	}
}

// Handle processes one event.
func (s *ScoreSync) Handle(evt notify.Event) {
	switch e := evt.(type) {
	case notify.SceneReady:
		s.mu.Lock()
		s.lastTotal = 0
		s.mu.Unlock()
	case notify.ScoreUpdate:
		s.mu.Lock()
		delta := e.Total - s.lastTotal
		if delta > 0 {
			s.lastTotal = e.Total
		}
		s.mu.Unlock()

		if delta <= 0 {
			return
		}
		if _, err := s.wallet.AddPoints(int64(delta)); err != nil {
			s.logger.Warn("could not credit points", "points", delta, "err", err)
		}
	}
}

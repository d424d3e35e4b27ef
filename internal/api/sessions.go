package api

import (
	"sync"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/games/match3"
	"github.com/vovakirdan/tile-arcade/internal/notify"
)

// eventBuffer is how many undelivered notifications a session keeps.
const eventBuffer = 64

// session is one remotely played game. mu serializes every request that
// touches game; the session itself is not safe for concurrent use.
type session struct {
	mu sync.Mutex

	id     string
	mode   match3.Mode
	game   *match3.Session
	bus    *notify.Bus
	events *notify.ChannelSubscriber
	detach []func()

	lastSeen time.Time
}

// tick charges the wall-clock time since the previous request to the
// session countdown.
func (s *session) tick(now time.Time) {
	if d := now.Sub(s.lastSeen); d > 0 {
		s.game.AdvanceClock(d)
	}
	s.lastSeen = now
}

// drain returns the notifications published since the last call.
func (s *session) drain() []eventJSON {
	var out []eventJSON
	for {
		select {
		case evt := <-s.events.Events():
			out = append(out, eventJSON{Name: evt.Name(), Data: evt})
		default:
			return out
		}
	}
}

func (s *session) close() {
	for _, d := range s.detach {
		d()
	}
	s.events.Close()
}

// sessionStore keeps live sessions in memory, keyed by ID.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (st *sessionStore) put(s *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.id] = s
}

func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *sessionStore) remove(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	return s, ok
}

func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// expire removes and returns sessions not seen since before cutoff.
func (st *sessionStore) expire(cutoff time.Time) []*session {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []*session
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			out = append(out, s)
		}
	}
	return out
}

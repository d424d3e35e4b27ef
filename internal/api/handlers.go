package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile-arcade/internal/games/match3"
	"github.com/vovakirdan/tile-arcade/internal/games/match3/engine"
	"github.com/vovakirdan/tile-arcade/internal/notify"
	"github.com/vovakirdan/tile-arcade/internal/storage"
	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

// Board size limits for API sessions.
const (
	minRows = 3
	maxRows = 16
	minCols = 3
	maxCols = 16
)

type createRequest struct {
	Mode string       `json:"mode"` // "weekly" (default) or "daily"
	Rows int          `json:"rows"` // 0 = configured default
	Seed int64        `json:"seed"` // 0 = random
	Grid *engine.Grid `json:"grid"` // fixed starting board, mainly for tests
}

type stateResponse struct {
	ID             string           `json:"id"`
	Mode           match3.Mode      `json:"mode"`
	Grid           *engine.Grid     `json:"grid"`
	Score          int              `json:"score"`
	MovesRemaining int              `json:"moves_remaining"`
	TimeLeftMS     int64            `json:"time_left_ms"`
	Timed          bool             `json:"timed"`
	Phase          match3.Phase     `json:"phase"`
	EndReason      notify.EndReason `json:"end_reason,omitempty"`
	Events         []eventJSON      `json:"events,omitempty"`
}

type createResponse struct {
	ID    string        `json:"id"`
	Token string        `json:"token"`
	State stateResponse `json:"state"`
}

type swapRequest struct {
	A engine.Cell `json:"a"`
	B engine.Cell `json:"b"`
}

type swapResponse struct {
	match3.SwapOutcome
	State stateResponse `json:"state"`
}

// state snapshots sess and drains its pending notifications. Callers hold
// sess.mu.
func (s *Server) state(sess *session) stateResponse {
	v := sess.game.State()
	return stateResponse{
		ID:             sess.id,
		Mode:           sess.mode,
		Grid:           v.Grid,
		Score:          v.Score,
		MovesRemaining: v.MovesRemaining,
		TimeLeftMS:     v.TimeLeft.Milliseconds(),
		Timed:          v.Timed,
		Phase:          v.Phase,
		EndReason:      v.EndReason,
		Events:         sess.drain(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	mode, ok := match3.ParseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
		return
	}
	rows := req.Rows
	switch {
	case req.Grid != nil:
		rows = req.Grid.Rows()
	case rows == 0 && s.conf.Board.Rows > 0:
		rows = s.conf.Board.Rows
	case rows == 0:
		rows = s.conf.Board.TallRows
	}
	if rows < minRows || rows > maxRows {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("rows must be between %d and %d", minRows, maxRows))
		return
	}
	if req.Grid != nil && (req.Grid.Cols() < minCols || req.Grid.Cols() > maxCols) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("grid columns must be between %d and %d", minCols, maxCols))
		return
	}

	now := s.now()
	sc := mode.SessionConfig(s.conf, rows)
	sc.Seed = req.Seed
	if sc.Seed == 0 {
		sc.Seed = now.UnixNano()
	}
	sc.Grid = req.Grid
	if s.wallet != nil {
		moves, extra, err := s.wallet.Bonus()
		if err != nil {
			s.logger.Warn("could not read wallet bonus", "err", err)
		} else {
			sc.BonusMoves, sc.BonusTime = moves, extra
		}
	}

	sess := &session{
		id:       uuid.NewString(),
		mode:     mode,
		bus:      notify.NewBus(),
		events:   notify.NewChannelSubscriber(eventBuffer),
		lastSeen: now,
	}
	// Subscribers go first so they see the deal.
	s.attach(sess)

	game, err := match3.NewSession(sc, match3.WithPublisher(sess.bus))
	if err != nil {
		sess.close()
		if errors.Is(err, match3.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("could not create session", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	sess.game = game

	token, err := s.issueToken(sess.id)
	if err != nil {
		sess.close()
		s.logger.Error("could not sign token", "err", err)
		writeError(w, http.StatusInternalServerError, "could not sign token")
		return
	}
	s.sessions.put(sess)
	s.logger.Info("session created", "id", sess.id, "mode", mode, "rows", game.Board().Rows())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, createResponse{ID: sess.id, Token: token, State: s.state(sess)})
}

// attach wires a session's bus to the client event queue, the wallet and
// the scoreboard.
func (s *Server) attach(sess *session) {
	sess.detach = append(sess.detach, sess.bus.SubscribeAll(sess.events.Handle))
	if s.wallet != nil {
		scores := wallet.NewScoreSync(s.wallet, s.logger.With("session", sess.id))
		sess.detach = append(sess.detach, scores.Attach(sess.bus))
	}
	sess.detach = append(sess.detach, sess.bus.Subscribe(notify.NameGameOver, func(evt notify.Event) {
		over, ok := evt.(notify.GameOver)
		if !ok {
			return
		}
		s.logger.Info("session over", "id", sess.id, "score", over.Score, "reason", over.Reason)
		if s.store == nil || over.Score <= 0 {
			return
		}
		if _, err := s.store.SaveScore(sess.mode.GameID(), over.Score); err != nil {
			s.logger.Warn("could not save score", "id", sess.id, "err", err)
		}
	}))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.tick(s.now())
	writeJSON(w, http.StatusOK, s.state(sess))
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.tick(s.now())
	out := sess.game.AttemptSwap(req.A, req.B)

	status := http.StatusOK
	switch out.Reason {
	case match3.RejectInvalidTarget:
		status = http.StatusUnprocessableEntity
	case match3.RejectNotAccepting:
		status = http.StatusConflict
	}
	writeJSON(w, status, swapResponse{SwapOutcome: out, State: s.state(sess)})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.game.Restart(); err != nil {
		s.logger.Error("could not restart session", "id", sess.id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not restart session")
		return
	}
	sess.lastSeen = s.now()
	writeJSON(w, http.StatusOK, s.state(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if _, ok := s.sessions.remove(sess.id); ok {
		sess.mu.Lock()
		sess.close()
		sess.mu.Unlock()
		s.logger.Info("session deleted", "id", sess.id)
	}
	w.WriteHeader(http.StatusNoContent)
}

type walletResponse struct {
	Points       int64            `json:"points"`
	ExtraMoves   int              `json:"extra_moves"`
	ExtraSeconds int              `json:"extra_seconds"`
	Coupons      []storage.Coupon `json:"coupons"`
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if s.wallet == nil {
		writeError(w, http.StatusServiceUnavailable, "wallet unavailable")
		return
	}
	b, err := s.wallet.Balance()
	if err != nil {
		s.logger.Error("could not read wallet", "err", err)
		writeError(w, http.StatusInternalServerError, "could not read wallet")
		return
	}
	coupons, err := s.wallet.Coupons()
	if err != nil {
		s.logger.Error("could not list coupons", "err", err)
		writeError(w, http.StatusInternalServerError, "could not list coupons")
		return
	}
	writeJSON(w, http.StatusOK, walletResponse{
		Points:       b.Points,
		ExtraMoves:   b.ExtraMoves,
		ExtraSeconds: b.ExtraSeconds,
		Coupons:      coupons,
	})
}

type shopResponse struct {
	Items  []wallet.Item `json:"items"`
	Coupon couponOffer   `json:"coupon"`
}

type couponOffer struct {
	Price     int64  `json:"price"`
	FaceValue string `json:"face_value"`
	Currency  string `json:"currency"`
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	if s.wallet == nil {
		writeError(w, http.StatusServiceUnavailable, "wallet unavailable")
		return
	}
	catalog := s.wallet.Catalog()
	spec := catalog.Coupon()
	writeJSON(w, http.StatusOK, shopResponse{
		Items: catalog.Items(),
		Coupon: couponOffer{
			Price:     spec.Price,
			FaceValue: spec.FaceValue.StringFixed(2),
			Currency:  spec.Currency,
		},
	})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	if s.wallet == nil {
		writeError(w, http.StatusServiceUnavailable, "wallet unavailable")
		return
	}
	id := chi.URLParam(r, "item")
	receipt, err := s.wallet.Buy(id)
	switch {
	case errors.Is(err, wallet.ErrUnknownItem):
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown item %q", id))
		return
	case errors.Is(err, wallet.ErrInsufficientPoints):
		writeError(w, http.StatusPaymentRequired, "insufficient points")
		return
	case err != nil:
		s.logger.Error("purchase failed", "item", id, "err", err)
		writeError(w, http.StatusInternalServerError, "purchase failed")
		return
	}
	s.logger.Info("purchase", "item", id, "points", receipt.Balance.Points)
	writeJSON(w, http.StatusOK, receipt)
}

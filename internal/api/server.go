// Package api serves match-3 sessions over HTTP. Clients create a session,
// receive a token bound to it, and play by posting swaps. Scores flow into
// the shared wallet the same way they do in the terminal.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/storage"
	"github.com/vovakirdan/tile-arcade/internal/wallet"
)

// ErrNoSecret is returned by New when no token signing secret is set.
var ErrNoSecret = errors.New("api: token secret is required")

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultIdleTimeout = 30 * time.Minute
	requestTimeout     = 10 * time.Second
)

// Options configures a Server. Only Secret is required.
type Options struct {
	Secret []byte
	Config config.Match3Config

	// Wallet receives score gains and serves the shop routes. Without it
	// those routes answer 503.
	Wallet *wallet.Wallet
	// Store records final scores.
	Store *storage.Store

	Logger      *log.Logger
	TokenTTL    time.Duration
	IdleTimeout time.Duration // sessions untouched this long are dropped

	Now func() time.Time
}

// Server is the HTTP API.
type Server struct {
	r        *chi.Mux
	secret   []byte
	conf     config.Match3Config
	wallet   *wallet.Wallet
	store    *storage.Store
	logger   *log.Logger
	tokenTTL time.Duration
	idle     time.Duration
	now      func() time.Time

	sessions *sessionStore
}

// New builds a Server and its routes.
func New(opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrNoSecret
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		r:        chi.NewRouter(),
		secret:   opts.Secret,
		conf:     opts.Config,
		wallet:   opts.Wallet,
		store:    opts.Store,
		logger:   opts.Logger,
		tokenTTL: opts.TokenTTL,
		idle:     opts.IdleTimeout,
		now:      opts.Now,
		sessions: newSessionStore(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(s.logger))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(requestTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.len()})
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Post("/swap", s.handleSwap)
			r.Post("/restart", s.handleRestart)
			r.Delete("/", s.handleDeleteSession)
		})
	})

	s.r.Get("/wallet", s.handleWallet)
	s.r.Get("/shop", s.handleShop)
	s.r.Post("/shop/{item}", s.handleBuy)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.r }

// Sweep drops sessions idle for longer than the idle timeout and returns
// how many it removed.
func (s *Server) Sweep() int {
	stale := s.sessions.expire(s.now().Add(-s.idle))
	for _, sess := range stale {
		sess.close()
		s.logger.Info("session expired", "id", sess.id)
	}
	return len(stale)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("stopping API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}

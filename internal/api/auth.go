package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims binds a token to one session.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type ctxSessionKey struct{}

// issueToken signs an HS256 token for session id.
func (s *Server) issueToken(id string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parseToken validates tokenStr and returns the session it was issued for.
func (s *Server) parseToken(tokenStr string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("api: invalid token")
	}
	return claims.SessionID, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// requireSession checks the bearer token against the {id} URL parameter
// and loads the session into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		sid, err := s.parseToken(tokenStr)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		id := chi.URLParam(r, "id")
		if sid != id {
			writeError(w, http.StatusForbidden, "token does not match session")
			return
		}
		sess, ok := s.sessions.get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *session {
	sess, _ := ctx.Value(ctxSessionKey{}).(*session)
	return sess
}

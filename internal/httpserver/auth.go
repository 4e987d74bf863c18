// internal/httpserver/auth.go
//
// Session tokens and the anonymous player cookie.
//
//   - Every session is created with an HS256 JWT carrying the session ID (sid)
//     and player ID (pid). Only holders of that token may read or drive the
//     session.
//   - Players are anonymous: a long-lived cookie carries a random player ID
//     that results and stats are recorded against.

package httpserver

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	playerCookieName = "letreco_player"
	tokenQueryParam  = "token"
)

var errBadToken = errors.New("invalid token")

// sessionClaims is what a session token proves.
type sessionClaims struct {
	SessionID string
	PlayerID  string
}

// deriveTokenKey expands the configured secret into the HS256 signing key.
func deriveTokenKey(secret string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("letreco session token v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(err)
	}
	return key
}

// signSessionToken creates an HS256 JWT for one session.
func (s *Server) signSessionToken(sessionID, playerID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"pid": playerID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.tokenKey)
	return ss, exp, err
}

// parseSessionToken validates a token and extracts its claims.
func (s *Server) parseSessionToken(tok string) (*sessionClaims, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.tokenKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !t.Valid {
		return nil, errBadToken
	}
	sid, _ := claims["sid"].(string)
	pid, _ := claims["pid"].(string)
	if sid == "" || pid == "" {
		return nil, errBadToken
	}
	return &sessionClaims{SessionID: sid, PlayerID: pid}, nil
}

// bearerOrQuery extracts a token from the Authorization header or ?token=
// (browsers cannot set headers on websocket upgrades).
func bearerOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get(tokenQueryParam)
}

type ctxClaimsKey struct{}

// requireSession enforces a valid token whose sid matches {id}.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerOrQuery(r)
			if tok == "" {
				httpError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := s.parseSessionToken(tok)
			if err != nil {
				httpError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			if claims.SessionID != chi.URLParam(r, "id") {
				httpError(w, http.StatusForbidden, "wrong_session")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFrom returns the claims requireSession stored on the request.
func claimsFrom(r *http.Request) *sessionClaims {
	if c, ok := r.Context().Value(ctxClaimsKey{}).(*sessionClaims); ok {
		return c
	}
	return &sessionClaims{}
}

// ensurePlayerID returns the player cookie, setting a new one if missing.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if id := playerID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: func() http.SameSite {
			if s.opts.SecureCookies {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: s.now().Add(180 * 24 * time.Hour),
	})
	return id
}

// playerID reads the player cookie without setting one.
func playerID(r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil {
		return c.Value
	}
	return ""
}

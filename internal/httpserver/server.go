// internal/httpserver/server.go
//
// HTTP server wiring for letreco.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: create a game, read its snapshot, send keys,
//     attach a websocket, tear it down.
//   - Daily endpoints: today's puzzle, leaderboard, player stats.
//   - Background sweep of idle sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Session routes require the JWT handed out when the session was created.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/input"
	"github.com/Julianoze/letreco/internal/store"
	"github.com/Julianoze/letreco/internal/words"
)

// Options carries the settings the server needs from config.
// Now must be the clock the session store stamps entries with.
type Options struct {
	Secret        string
	ClientOrigin  string
	DailySalt     string
	Epoch         time.Time
	SessionTTL    time.Duration
	SecureCookies bool
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Server bundles router, live sessions, word lists and the results store.
type Server struct {
	r        *chi.Mux
	store    store.Store
	results  *daily.Store
	words    *words.Catalog
	opts     Options
	tokenKey []byte
	listener *input.Listener
	hub      *hub

	mu    sync.Mutex            // guards daily and days
	daily map[string]string     // player|date -> live daily session ID
	days  map[string]daily.Word // date -> puzzle, pinned on first use
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, results *daily.Store, catalog *words.Catalog, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Epoch.IsZero() {
		opts.Epoch = daily.DefaultEpoch
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		results:  results,
		words:    catalog,
		opts:     opts,
		tokenKey: deriveTokenKey(opts.Secret),
		listener: input.NewListener(),
		hub:      newHub(),
		daily:    make(map[string]string),
		days:     make(map[string]daily.Word),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "letreco",
			"endpoints": []string{"/health", "POST /session/new", "POST /session/{id}/key", "GET /session/{id}/ws", "/daily"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	s.mountSessions()
	s.mountDaily()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) now() time.Time { return s.opts.Now() }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		s.hub.closeAll()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sweepLoop drops idle sessions every quarter TTL.
func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(s.opts.SessionTTL / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.sweep(ctx); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}

// sweep drops sessions idle for longer than the TTL and settles them.
func (s *Server) sweep(ctx context.Context) int {
	swept := s.store.Sweep(ctx, s.now().Add(-s.opts.SessionTTL))
	for _, e := range swept {
		s.settle(e)
	}
	return len(swept)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func httpError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// internal/httpserver/routes_session.go
//
// Game session endpoints:
//   - POST   /session/new       → start a daily or random game, returns a token
//   - GET    /session/{id}      → current snapshot
//   - POST   /session/{id}/key  → apply one key press
//   - DELETE /session/{id}      → abandon the session
//   - GET    /session/{id}/ws   → live key stream (see ws.go)
//
// A player gets one daily game per date: while it is live the same session is
// handed back, once it has been recorded a new one is refused. Abandoning a
// daily (DELETE or idle sweep) records it as a loss.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/game"
	"github.com/Julianoze/letreco/internal/input"
	"github.com/Julianoze/letreco/internal/store"
)

// sessionView is the JSON shape of a session for clients.
type sessionView struct {
	game.Snapshot
	Mode   string      `json:"mode"`
	Daily  *daily.Word `json:"daily,omitempty"`
	Status string      `json:"status"`
	Share  string      `json:"share,omitempty"`
}

func viewOf(e *store.Entry, snap game.Snapshot) sessionView {
	v := sessionView{Snapshot: snap, Mode: e.Meta.Mode, Status: statusOf(snap.Win)}
	if e.Meta.Mode == daily.ModeDaily {
		v.Daily = &daily.Word{Number: e.Meta.Number, Date: e.Meta.Date}
	}
	if snap.Win.Ended {
		v.Share = game.ShareGrid(snap.Guesses, false)
	}
	return v
}

func statusOf(w game.WinState) string {
	switch {
	case !w.Ended:
		return "playing"
	case w.Won:
		return "won"
	default:
		return "lost"
	}
}

func (s *Server) mountSessions() {
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession())
			r.Get("/", s.handleGetSession)
			r.Post("/key", s.handleKey)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/ws", s.handleWS)
		})
	})
}

type newSessionReq struct {
	Mode string `json:"mode"`
}

type newSessionResp struct {
	SessionID string      `json:"sessionId"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Session   sessionView `json:"session"`
}

// handleNewSession starts (or resumes) a game for the calling player.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = daily.ModeDaily
	}
	if mode != daily.ModeDaily && mode != daily.ModeRandom {
		httpError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	pid := s.ensurePlayerID(w, r)

	var (
		e   *store.Entry
		err error
	)
	if mode == daily.ModeDaily {
		e, err = s.dailySession(r.Context(), pid)
	} else {
		e, err = s.startSession(r.Context(), s.words.Current().Random(), store.Meta{PlayerID: pid, Mode: daily.ModeRandom})
	}
	switch {
	case errors.Is(err, errAlreadyPlayed):
		httpError(w, http.StatusConflict, "already_played")
		return
	case errors.Is(err, errNoWords):
		httpError(w, http.StatusServiceUnavailable, "no_words")
		return
	case err != nil:
		log.Error().Err(err).Str("player", pid).Msg("start session")
		httpError(w, http.StatusInternalServerError, "server_error")
		return
	}

	snap := e.Snapshot()
	tok, exp, err := s.signSessionToken(snap.ID, pid)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "token_error")
		return
	}
	writeJSON(w, http.StatusOK, newSessionResp{
		SessionID: snap.ID,
		Token:     tok,
		ExpiresAt: exp,
		Session:   viewOf(e, snap),
	})
}

var (
	errAlreadyPlayed = errors.New("daily already played")
	errNoWords       = errors.New("no answers loaded")
)

// dailySession returns the player's live daily session or starts one.
func (s *Server) dailySession(ctx context.Context, pid string) (*store.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick := s.dailyWordLocked(s.now())
	if pick.Index < 0 {
		return nil, errNoWords
	}
	key := pid + "|" + pick.Date

	if id, ok := s.daily[key]; ok {
		if e, err := s.store.Get(ctx, id); err == nil {
			return e, nil
		}
		delete(s.daily, key)
	}
	played, err := s.results.AlreadyPlayed(ctx, pid, pick.Date)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, errAlreadyPlayed
	}
	e, err := s.startSession(ctx, pick.Word, store.Meta{
		PlayerID:  pid,
		Mode:      daily.ModeDaily,
		Date:      pick.Date,
		WordIndex: pick.Index,
		Number:    pick.Number,
	})
	if err != nil {
		return nil, err
	}
	s.daily[key] = e.Snapshot().ID
	return e, nil
}

// dailyWord returns the puzzle for t's date.
func (s *Server) dailyWord(t time.Time) daily.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyWordLocked(t)
}

// dailyWordLocked picks the puzzle for t's date once and keeps it for the
// rest of the day, so reloading the word lists cannot change it. Older
// dates are forgotten. s.mu must be held.
func (s *Server) dailyWordLocked(t time.Time) daily.Word {
	date := daily.DateKey(t)
	if w, ok := s.days[date]; ok {
		return w
	}
	pick := daily.Pick(t, s.opts.DailySalt, s.opts.Epoch, s.words.Current().Answers())
	if pick.Index < 0 {
		return pick
	}
	for d := range s.days {
		delete(s.days, d)
	}
	s.days[date] = pick
	return pick
}

// startSession creates a session for target and registers it. The result is
// recorded once, when the game ends.
func (s *Server) startSession(ctx context.Context, target string, meta store.Meta) (*store.Entry, error) {
	if target == "" {
		return nil, errNoWords
	}
	if meta.Date == "" {
		meta.Date = daily.DateKey(s.now())
	}
	sess, err := game.New(target, s.words,
		game.WithClock(s.now),
		game.OnEnd(func(sum game.Summary) { s.recordResult(meta, sum) }),
	)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("session", sess.ID).Str("mode", meta.Mode).Str("player", meta.PlayerID).Msg("session started")
	return s.store.Save(ctx, sess, meta)
}

func (s *Server) recordResult(meta store.Meta, sum game.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res := daily.Result{
		SessionID: sum.SessionID,
		PlayerID:  meta.PlayerID,
		Mode:      meta.Mode,
		Date:      meta.Date,
		WordIndex: meta.WordIndex,
		Won:       sum.Won,
		Guesses:   sum.Attempts(),
		ElapsedMs: int(sum.Elapsed().Milliseconds()),
	}
	ok, err := s.results.InsertResult(ctx, res)
	if err != nil {
		log.Error().Err(err).Str("session", sum.SessionID).Msg("record result")
		return
	}
	log.Info().
		Str("session", sum.SessionID).
		Str("player", meta.PlayerID).
		Str("mode", meta.Mode).
		Bool("won", sum.Won).
		Int("guesses", res.Guesses).
		Bool("recorded", ok).
		Msg("game ended")
}

// entry loads the session named by {id}.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*store.Entry, bool) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, http.StatusNotFound, "session_not_found")
		return nil, false
	}
	return e, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(e, e.Snapshot()))
}

type keyReq struct {
	Key string `json:"key"`
}

type keyResp struct {
	Applied bool        `json:"applied"`
	Outcome string      `json:"outcome,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Session sessionView `json:"session"`
}

// handleKey applies one key. A key the gate refuses is not an HTTP error:
// the response says it was not applied and why.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ev, ok := input.ParseKey(req.Key)
	if !ok {
		httpError(w, http.StatusBadRequest, "unknown_key")
		return
	}
	res, snap := s.applyKey(e, ev)
	writeJSON(w, http.StatusOK, keyRespOf(e, res, snap))
}

func keyRespOf(e *store.Entry, res input.Result, snap game.Snapshot) keyResp {
	out := keyResp{Applied: res.Applied, Reason: reasonOf(res.Err), Session: viewOf(e, snap)}
	if res.Applied && res.Event.Kind == input.KindEnter {
		out.Outcome = res.Outcome.String()
	}
	return out
}

// applyKey runs ev against the session and pushes the new state to any
// attached websocket.
func (s *Server) applyKey(e *store.Entry, ev input.Event) (input.Result, game.Snapshot) {
	var (
		res  input.Result
		snap game.Snapshot
	)
	_ = e.Do(func(sess *game.Session) error {
		res = input.Dispatch(sess, ev)
		snap = sess.Snapshot()
		return nil
	})
	if res.Applied {
		s.hub.publish(snap.ID, wsMessage{Type: msgState, Session: ptr(viewOf(e, snap))})
	}
	return res, snap
}

func reasonOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrGameEnded):
		return "game_ended"
	case errors.Is(err, game.ErrLettersClosed):
		return "guess_full"
	case errors.Is(err, game.ErrNothingToErase):
		return "guess_empty"
	case errors.Is(err, game.ErrGuessIncomplete):
		return "guess_incomplete"
	case errors.Is(err, game.ErrInvalidLetter):
		return "invalid_letter"
	}
	return "rejected"
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		httpError(w, http.StatusNotFound, "session_not_found")
		return
	}
	s.settle(e)
	w.WriteHeader(http.StatusNoContent)
}

// settle closes out a session that left the store. An unfinished daily is
// recorded as a loss so the puzzle cannot be replayed.
func (s *Server) settle(e *store.Entry) {
	var (
		sum   game.Summary
		ended bool
	)
	_ = e.Do(func(sess *game.Session) error {
		sum, ended = sess.Summary(), sess.Ended()
		return nil
	})
	s.hub.close(sum.SessionID)

	if e.Meta.Mode != daily.ModeDaily {
		return
	}
	s.mu.Lock()
	key := e.Meta.PlayerID + "|" + e.Meta.Date
	if s.daily[key] == sum.SessionID {
		delete(s.daily, key)
	}
	s.mu.Unlock()

	if ended {
		return
	}
	log.Info().Str("session", sum.SessionID).Str("player", e.Meta.PlayerID).Msg("daily abandoned")
	sum.Won = false
	sum.EndedAt = s.now()
	s.recordResult(e.Meta, sum)
}

func ptr[T any](v T) *T { return &v }

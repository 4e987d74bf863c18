// internal/httpserver/routes_daily.go
//
// Read-only routes around the daily puzzle:
//   - GET /daily              → today's puzzle number/date and whether the caller played it
//   - GET /daily/leaderboard  → top winners for today (or ?date=YYYY-MM-DD)
//   - GET /stats/me           → the caller's streaks and guess distribution
//
// Playing the daily goes through POST /session/new with mode "daily".

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/daily"
)

func (s *Server) mountDaily() {
	s.r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
	s.r.Get("/stats/me", s.handleStats)
}

type dailyRes struct {
	daily.Word
	Played bool `json:"played"`
}

// handleDaily describes today's puzzle without revealing the word.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	pick := s.dailyWord(s.now())
	res := dailyRes{Word: pick}
	if pid := playerID(r); pid != "" {
		played, err := s.results.AlreadyPlayed(r.Context(), pid, pick.Date)
		if err != nil {
			log.Error().Err(err).Msg("daily lookup")
			httpError(w, http.StatusInternalServerError, "server_error")
			return
		}
		res.Played = played
	}
	writeJSON(w, http.StatusOK, res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		httpError(w, http.StatusBadRequest, "bad_date")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			httpError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	rows, err := s.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		httpError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

type statsRes struct {
	daily.Stats
	WinRate int `json:"winRate"`
}

// handleStats reports the calling player's history. A caller without a
// player cookie has no history.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	if pid == "" {
		writeJSON(w, http.StatusOK, statsRes{})
		return
	}
	st, err := s.results.PlayerStats(r.Context(), pid)
	if err != nil {
		log.Error().Err(err).Str("player", pid).Msg("stats")
		httpError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Stats: st, WinRate: st.WinRate()})
}

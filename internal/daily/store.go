package daily

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Julianoze/letreco/internal/game"
)

// Modes recorded with each result.
const (
	ModeDaily  = "daily"
	ModeRandom = "random"
)

// Result is one finished game.
type Result struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
	Mode      string `json:"mode"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists finished games in the results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether player has a daily result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM results WHERE player_id=? AND date=? AND mode=?`,
		playerID, date, ModeDaily,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same session, or a second
// daily result for the same player and date, is ignored and reports false.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	if r.Mode == "" {
		r.Mode = ModeDaily
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(session_id, player_id, mode, date, word_index, won, guesses, elapsed_ms)
		VALUES(?,?,?,?,?,?,?,?)`,
		r.SessionID, r.PlayerID, r.Mode, r.Date, r.WordIndex, r.Won, r.Guesses, r.ElapsedMs,
	)
	if err != nil {
		return false, fmt.Errorf("insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type LBRow struct {
	PlayerID  string `json:"playerId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard lists the day's daily winners, fastest first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, guesses, elapsed_ms
		FROM results
		WHERE date=? AND mode=? AND won=1
		ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
		LIMIT ?`, date, ModeDaily, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats summarises a player's history.
type Stats struct {
	Played        int                  `json:"gamesPlayed"`
	Wins          int                  `json:"wins"`
	CurrentStreak int                  `json:"streak"`
	MaxStreak     int                  `json:"maxStreak"`
	Distribution  [game.MaxGuesses]int `json:"distribution"` // wins by number of guesses
}

// WinRate is wins over games played, as a percentage.
func (st Stats) WinRate() int {
	if st.Played == 0 {
		return 0
	}
	return st.Wins * 100 / st.Played
}

// PlayerStats replays a player's results in order. Played, wins and the
// distribution count every game. Streaks follow daily games only: a daily
// win on the day after the previous daily extends the streak, a loss or a
// skipped day resets it.
func (s *Store) PlayerStats(ctx context.Context, playerID string) (Stats, error) {
	var st Stats
	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, date, won, guesses FROM results WHERE player_id=? ORDER BY created_at ASC, id ASC`,
		playerID,
	)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	var lastDaily time.Time
	for rows.Next() {
		var (
			mode, date string
			won        bool
			guesses    int
		)
		if err := rows.Scan(&mode, &date, &won, &guesses); err != nil {
			return st, err
		}
		st.Played++
		if won {
			st.Wins++
			if guesses >= 1 && guesses <= game.MaxGuesses {
				st.Distribution[guesses-1]++
			}
		}
		if mode != ModeDaily {
			continue
		}

		day, err := time.Parse(dateLayout, date)
		if err != nil {
			return st, fmt.Errorf("result date %q: %w", date, err)
		}
		if lastDaily.IsZero() || !day.Equal(lastDaily.AddDate(0, 0, 1)) {
			st.CurrentStreak = 0
		}
		lastDaily = day
		if !won {
			st.CurrentStreak = 0
			continue
		}
		st.CurrentStreak++
		if st.CurrentStreak > st.MaxStreak {
			st.MaxStreak = st.CurrentStreak
		}
	}
	return st, rows.Err()
}

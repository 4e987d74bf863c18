package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Julianoze/letreco/internal/db"
)

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 500)
	if b := WordIndex(later, "salt", 500); a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if a < 0 || a >= 500 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Fatal("empty list should give 0")
	}
}

func TestNumber(t *testing.T) {
	epoch := time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{name: "epoch", at: epoch, want: 1},
		{name: "same day late", at: epoch.Add(23 * time.Hour), want: 1},
		{name: "next day", at: epoch.AddDate(0, 0, 1), want: 2},
		{name: "a year on", at: epoch.AddDate(1, 0, 0), want: 366},
		{name: "before epoch", at: epoch.AddDate(0, 0, -5), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.at, epoch); got != tt.want {
				t.Fatalf("Number = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPick(t *testing.T) {
	answers := []string{"crane", "slate", "sloth"}
	at := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	w := Pick(at, "salt", DefaultEpoch, answers)
	if w.Date != "2026-10-19" || w.Word != answers[w.Index] {
		t.Fatalf("pick = %+v", w)
	}
	if empty := Pick(at, "salt", DefaultEpoch, nil); empty.Word != "" || empty.Index != -1 {
		t.Fatalf("pick with no answers = %+v", empty)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := db.OpenAndMigrate(context.Background(), filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewStore(sqlDB)
}

func TestStoreResults(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	ok, err := st.InsertResult(ctx, Result{SessionID: "s1", PlayerID: "alice", Date: "2026-10-19", Won: true, Guesses: 3, ElapsedMs: 9000})
	if err != nil || !ok {
		t.Fatalf("insert: %v, %v", ok, err)
	}
	// Same session again is ignored.
	if ok, _ := st.InsertResult(ctx, Result{SessionID: "s1", PlayerID: "alice", Date: "2026-10-19", Won: true, Guesses: 3}); ok {
		t.Fatal("duplicate session recorded")
	}
	// Second daily on the same day is ignored.
	if ok, _ := st.InsertResult(ctx, Result{SessionID: "s2", PlayerID: "alice", Date: "2026-10-19", Won: false, Guesses: 6}); ok {
		t.Fatal("second daily result recorded")
	}
	// Random games are not limited.
	if ok, err := st.InsertResult(ctx, Result{SessionID: "s3", PlayerID: "alice", Mode: ModeRandom, Date: "2026-10-19", Won: false, Guesses: 6}); err != nil || !ok {
		t.Fatalf("random insert: %v, %v", ok, err)
	}
	if _, err := st.InsertResult(ctx, Result{SessionID: "s4", PlayerID: "bob", Date: "2026-10-19", Won: true, Guesses: 4, ElapsedMs: 5000}); err != nil {
		t.Fatalf("insert bob: %v", err)
	}
	if _, err := st.InsertResult(ctx, Result{SessionID: "s5", PlayerID: "carol", Date: "2026-10-19", Won: false, Guesses: 6, ElapsedMs: 1000}); err != nil {
		t.Fatalf("insert carol: %v", err)
	}

	played, err := st.AlreadyPlayed(ctx, "alice", "2026-10-19")
	if err != nil || !played {
		t.Fatalf("already played = %v, %v", played, err)
	}
	if played, _ := st.AlreadyPlayed(ctx, "alice", "2026-10-20"); played {
		t.Fatal("alice has not played tomorrow")
	}

	lb, err := st.Leaderboard(ctx, "2026-10-19", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 2 || lb[0].PlayerID != "bob" || lb[1].PlayerID != "alice" {
		t.Fatalf("leaderboard = %+v", lb)
	}
}

func TestPlayerStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	games := []struct {
		won     bool
		guesses int
	}{
		{true, 3}, {true, 4}, {false, 6}, {true, 2}, {true, 3}, {true, 6},
	}
	for i, g := range games {
		date := time.Date(2026, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		if _, err := st.InsertResult(ctx, Result{
			SessionID: "s" + DateKey(date), PlayerID: "p", Date: DateKey(date), Won: g.won, Guesses: g.guesses,
		}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	stats, err := st.PlayerStats(ctx, "p")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Played != 6 || stats.Wins != 5 {
		t.Fatalf("played/wins = %d/%d", stats.Played, stats.Wins)
	}
	if stats.CurrentStreak != 3 || stats.MaxStreak != 3 {
		t.Fatalf("streaks = %d/%d", stats.CurrentStreak, stats.MaxStreak)
	}
	want := [6]int{0, 1, 2, 1, 0, 1}
	if stats.Distribution != want {
		t.Fatalf("distribution = %v, want %v", stats.Distribution, want)
	}
	if stats.WinRate() != 83 {
		t.Fatalf("win rate = %d", stats.WinRate())
	}

	empty, err := st.PlayerStats(ctx, "nobody")
	if err != nil || empty.Played != 0 || empty.WinRate() != 0 {
		t.Fatalf("empty stats = %+v, %v", empty, err)
	}
}

func TestPlayerStatsStreakRules(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	results := []Result{
		{SessionID: "a", Mode: ModeDaily, Date: "2026-03-01", Won: true, Guesses: 4},
		{SessionID: "b", Mode: ModeDaily, Date: "2026-03-02", Won: true, Guesses: 3},
		// Random games count as played but never touch the streak.
		{SessionID: "c", Mode: ModeRandom, Date: "2026-03-02", Won: false, Guesses: 6},
		{SessionID: "d", Mode: ModeRandom, Date: "2026-03-03", Won: true, Guesses: 2},
		// 2026-03-03 has no daily, so the streak restarts.
		{SessionID: "e", Mode: ModeDaily, Date: "2026-03-04", Won: true, Guesses: 5},
	}
	for _, r := range results {
		r.PlayerID = "p"
		if _, err := st.InsertResult(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.SessionID, err)
		}
	}

	stats, err := st.PlayerStats(ctx, "p")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Played != 5 || stats.Wins != 4 {
		t.Fatalf("played/wins = %d/%d", stats.Played, stats.Wins)
	}
	if stats.CurrentStreak != 1 || stats.MaxStreak != 2 {
		t.Fatalf("streaks = %d/%d, want 1/2", stats.CurrentStreak, stats.MaxStreak)
	}
	if want := [6]int{0, 1, 1, 1, 1, 0}; stats.Distribution != want {
		t.Fatalf("distribution = %v, want %v", stats.Distribution, want)
	}
}

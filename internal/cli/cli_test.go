package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Julianoze/letreco/internal/config"
	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/db"
	"github.com/Julianoze/letreco/internal/game"
	"github.com/Julianoze/letreco/internal/words"
)

// testEnv points every file the CLI touches into a temp dir.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "letreco.db"))
	t.Setenv("LETRECO_SETTINGS", filepath.Join(dir, "settings.yaml"))
	t.Setenv("LETRECO_LOG_FILE", filepath.Join(dir, "letreco.log"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCommand("1.2.3", "abc123", "2024-01-01")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("letreco %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, "letreco 1.2.3 (abc123) built on 2024-01-01") {
		t.Fatalf("version output:\n%s", out)
	}
}

func TestWordsCommand(t *testing.T) {
	testEnv(t)

	out := run(t, "words")
	if !strings.Contains(out, "answers:") || !strings.Contains(out, "allowed:") {
		t.Fatalf("counts output:\n%s", out)
	}

	out = run(t, "words", "crane", "fjord", "crank")
	for _, want := range []string{"crane    accepted (answer)", "fjord    accepted", "crank    not accepted"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	out = run(t, "--json", "words", "CRANE")
	var checks []struct {
		Word    string `json:"word"`
		Allowed bool   `json:"allowed"`
		Answer  bool   `json:"answer"`
	}
	if err := json.Unmarshal([]byte(out), &checks); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(checks) != 1 || checks[0].Word != "crane" || !checks[0].Answer {
		t.Fatalf("checks = %+v", checks)
	}
}

func TestStatsCommandEmpty(t *testing.T) {
	dir := testEnv(t)
	out := run(t, "stats")
	if !strings.Contains(out, "Played:          0") || !strings.Contains(out, "Guess distribution:") {
		t.Fatalf("stats output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.yaml")); err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
}

func TestLocalDailyPlayedOnce(t *testing.T) {
	testEnv(t)
	c, err := config.FromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg = c

	ctx := context.Background()
	conn, err := db.OpenAndMigrate(ctx, ":memory:")
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	defer conn.Close()
	results := daily.NewStore(conn)

	list, err := words.New([]string{"crane"}, nil)
	if err != nil {
		t.Fatalf("words: %v", err)
	}

	g, err := newLocalGame(ctx, results, list, "me", false)
	if err != nil || g == nil {
		t.Fatalf("first game = %v, %v", g, err)
	}
	if g.daily == nil || g.daily.Number < 1 {
		t.Fatalf("daily = %+v", g.daily)
	}
	for _, ch := range "CRANE" {
		if err := g.session.AppendLetter(string(ch)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if out, err := g.session.Submit(); err != nil || out != game.OutcomeWon {
		t.Fatalf("submit = %v, %v", out, err)
	}

	again, err := newLocalGame(ctx, results, list, "me", false)
	if err != nil || again != nil {
		t.Fatalf("second daily = %v, %v", again, err)
	}

	// Random games are never blocked.
	r, err := newLocalGame(ctx, results, list, "me", true)
	if err != nil || r == nil || r.daily != nil {
		t.Fatalf("random game = %+v, %v", r, err)
	}

	st, err := results.PlayerStats(ctx, "me")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Played != 1 || st.Distribution[0] != 1 {
		t.Fatalf("stats = %+v", st)
	}

	var buf bytes.Buffer
	printStats(&buf, st)
	if !strings.Contains(buf.String(), "Win %:           100") {
		t.Fatalf("printed stats:\n%s", buf.String())
	}
}

func TestLocalDailyAbandoned(t *testing.T) {
	testEnv(t)
	c, err := config.FromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg = c

	ctx := context.Background()
	conn, err := db.OpenAndMigrate(ctx, ":memory:")
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	defer conn.Close()
	results := daily.NewStore(conn)

	list, err := words.New([]string{"crane"}, []string{"slate"})
	if err != nil {
		t.Fatalf("words: %v", err)
	}

	g, err := newLocalGame(ctx, results, list, "me", false)
	if err != nil || g == nil {
		t.Fatalf("first game = %v, %v", g, err)
	}
	for _, ch := range "SLATE" {
		if err := g.session.AppendLetter(string(ch)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if out, err := g.session.Submit(); err != nil || out != game.OutcomeContinue {
		t.Fatalf("submit = %v, %v", out, err)
	}
	g.abandon()

	if again, err := newLocalGame(ctx, results, list, "me", false); err != nil || again != nil {
		t.Fatalf("daily after quitting = %v, %v", again, err)
	}
	st, err := results.PlayerStats(ctx, "me")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Played != 1 || st.Wins != 0 {
		t.Fatalf("stats = %+v", st)
	}

	// Quitting a random game records nothing.
	r, err := newLocalGame(ctx, results, list, "me", true)
	if err != nil || r == nil {
		t.Fatalf("random game = %v, %v", r, err)
	}
	r.abandon()
	if st, _ := results.PlayerStats(ctx, "me"); st.Played != 1 {
		t.Fatalf("random abandon recorded: %+v", st)
	}
}

package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeList(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadEmbedded(t *testing.T) {
	l, err := Load(Sources{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a, g := l.Stats()
	if a == 0 || g < a {
		t.Fatalf("stats = (%d, %d)", a, g)
	}
	if !l.IsAnswer("crane") || !l.IsAllowed("CRANE") {
		t.Fatal("crane should be an answer")
	}
	if l.IsAnswer("fjord") || !l.IsAllowed("fjord") {
		t.Fatal("fjord should be allowed but not an answer")
	}
	if l.IsAllowed("crank") {
		t.Fatal("crank should not be accepted")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	answers := writeList(t, dir, "answers.txt", "# comment\nCrane\nslate\n\ntoolong\nab1de\n")
	allowed := writeList(t, dir, "allowed.txt", "fjord\nnacre\n")

	tests := []struct {
		name        string
		src         Sources
		wantAnswers int
		allowed     []string
		denied      []string
	}{
		{
			name:        "both files",
			src:         Sources{AnswersFile: answers, AllowedFile: allowed},
			wantAnswers: 2,
			allowed:     []string{"crane", "slate", "fjord", "nacre"},
			denied:      []string{"toolong", "ab1de", "sloth"},
		},
		{
			name:        "allowed only doubles as answers",
			src:         Sources{AllowedFile: allowed},
			wantAnswers: 2,
			allowed:     []string{"fjord", "nacre"},
			denied:      []string{"crane"},
		},
		{
			name:        "answers only uses embedded allowed",
			src:         Sources{AnswersFile: answers},
			wantAnswers: 2,
			allowed:     []string{"crane", "fjord"},
			denied:      []string{"sloth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Load(tt.src)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := len(l.Answers()); got != tt.wantAnswers {
				t.Fatalf("answers = %d, want %d", got, tt.wantAnswers)
			}
			for _, w := range tt.allowed {
				if !l.IsAllowed(w) {
					t.Errorf("%s should be allowed", w)
				}
			}
			for _, w := range tt.denied {
				if l.IsAllowed(w) {
					t.Errorf("%s should not be allowed", w)
				}
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Sources{AllowedFile: filepath.Join(t.TempDir(), "nope.txt")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewEmptyAnswers(t *testing.T) {
	if _, err := New([]string{"nope", "12345"}, []string{"crane"}); !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("err = %v, want ErrNoAnswers", err)
	}
}

func TestRandomIsAnswer(t *testing.T) {
	l, err := New([]string{"crane", "slate", "crane"}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := len(l.Answers()); got != 2 {
		t.Fatalf("duplicates kept: %d answers", got)
	}
	for i := 0; i < 20; i++ {
		if w := l.Random(); !l.IsAnswer(w) {
			t.Fatalf("random word %q is not an answer", w)
		}
	}
}

func TestCatalogReload(t *testing.T) {
	dir := t.TempDir()
	p := writeList(t, dir, "allowed.txt", "crane\n")
	c, err := Open(Sources{AllowedFile: p})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if c.IsAllowed("slate") {
		t.Fatal("slate allowed before reload")
	}

	writeList(t, dir, "allowed.txt", "crane\nslate\n")
	if err := c.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !c.IsAllowed("slate") {
		t.Fatal("slate not allowed after reload")
	}

	writeList(t, dir, "allowed.txt", "")
	if err := c.Reload(); err == nil {
		t.Fatal("expected error reloading empty list")
	}
	if !c.IsAllowed("slate") {
		t.Fatal("failed reload replaced the list")
	}
}

func TestCatalogWatch(t *testing.T) {
	dir := t.TempDir()
	p := writeList(t, dir, "allowed.txt", "crane\n")
	c, err := Open(Sources{AllowedFile: p})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch: %v", err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !c.IsAllowed("sloth") {
		if time.Now().After(deadline) {
			t.Fatal("watcher did not pick up the change")
		}
		// Rewrite until the watcher is registered and sees it.
		writeList(t, dir, "allowed.txt", "crane\nsloth\n")
		time.Sleep(50 * time.Millisecond)
	}
}

func TestWatchEmbeddedReturns(t *testing.T) {
	c, err := Open(Sources{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Watch(context.Background()); err != nil {
		t.Fatalf("watch: %v", err)
	}
}

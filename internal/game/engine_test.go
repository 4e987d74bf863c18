package game

import (
	"math/rand"
	"strings"
	"testing"
)

func guessOf(word string) Guess {
	g := make(Guess, len(word))
	for i := range word {
		g[i] = Letter{Char: word[i : i+1], Status: StatusTyping}
	}
	return g
}

func statusesOf(g Guess) []Status {
	out := make([]Status, len(g))
	for i, l := range g {
		out[i] = l.Status
	}
	return out
}

const (
	R = StatusRight
	W = StatusWrong
	D = StatusDisplaced
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []Status
		right  bool
	}{
		{name: "exact", guess: "CRANE", target: "CRANE", want: []Status{R, R, R, R, R}, right: true},
		{name: "one off", guess: "CRATE", target: "CRANE", want: []Status{R, R, R, W, R}},
		{name: "repeated guess letter, no exact", guess: "SPEED", target: "ERASE", want: []Status{D, W, D, D, W}},
		{name: "repeated letter with exact", guess: "ALLEY", target: "HELLO", want: []Status{W, D, R, D, W}},
		{name: "two copies both displaced", guess: "LLAMA", target: "HELLO", want: []Status{D, D, W, W, W}},
		{name: "first copy consumes", guess: "EERIE", target: "THEME", want: []Status{D, W, W, W, R}},
		{name: "nothing shared", guess: "FJORD", target: "CRANE", want: []Status{W, W, W, D, W}},
		{name: "anagram", guess: "NACRE", target: "CRANE", want: []Status{D, D, D, D, R}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, right := Evaluate(guessOf(tt.guess), tt.target)
			if right != tt.right {
				t.Fatalf("isRightGuess = %v, want %v", right, tt.right)
			}
			gs := statusesOf(got)
			for i := range tt.want {
				if gs[i] != tt.want[i] {
					t.Fatalf("status[%d] = %s, want %s (all: %v)", i, gs[i], tt.want[i], gs)
				}
			}
			if got.Word() != tt.guess {
				t.Fatalf("letters changed: %q", got.Word())
			}
		})
	}
}

func TestEvaluateIgnoresTransientStatus(t *testing.T) {
	g := guessOf("CRANE").withStatus(StatusWordlistError)
	got, right := Evaluate(g, "CRANE")
	if !right {
		t.Fatal("expected right guess")
	}
	for i, l := range got {
		if l.Status != StatusRight {
			t.Fatalf("status[%d] = %s", i, l.Status)
		}
	}
}

func TestEvaluateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// Small alphabet so duplicates are common.
	const alphabet = "AEILNRST"
	word := func() string {
		var b strings.Builder
		for i := 0; i < WordSize; i++ {
			b.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	for n := 0; n < 2000; n++ {
		guess, target := word(), word()
		got, right := Evaluate(guessOf(guess), target)
		if len(got) != WordSize {
			t.Fatalf("%s vs %s: %d letters scored", guess, target, len(got))
		}

		var exact int
		used := map[string]int{}
		avail := map[string]int{}
		for i := 0; i < WordSize; i++ {
			avail[target[i:i+1]]++
			if guess[i] == target[i] {
				exact++
			}
		}
		allRight := true
		for _, l := range got {
			switch l.Status {
			case StatusRight:
				used[l.Char]++
			case StatusDisplaced:
				used[l.Char]++
				allRight = false
			case StatusWrong:
				allRight = false
			default:
				t.Fatalf("%s vs %s: unexpected status %s", guess, target, l.Status)
			}
		}

		var rights int
		for _, l := range got {
			if l.Status == StatusRight {
				rights++
			}
		}
		if rights != exact {
			t.Fatalf("%s vs %s: %d right, want %d", guess, target, rights, exact)
		}
		if right != allRight || right != (guess == target) {
			t.Fatalf("%s vs %s: isRightGuess=%v allRight=%v", guess, target, right, allRight)
		}
		for c, k := range used {
			if k > avail[c] {
				t.Fatalf("%s vs %s: %d hits for %s but target has %d", guess, target, k, c, avail[c])
			}
		}
	}
}

func TestLetterStatesMerge(t *testing.T) {
	tests := []struct {
		name string
		seq  []Status
		want Status
	}{
		{name: "first wins", seq: []Status{W}, want: W},
		{name: "wrong to displaced", seq: []Status{W, D}, want: D},
		{name: "displaced not downgraded", seq: []Status{D, W}, want: D},
		{name: "displaced to right", seq: []Status{D, R}, want: R},
		{name: "right locks", seq: []Status{R, W, D}, want: R},
		{name: "wrong to right", seq: []Status{W, R}, want: R},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LetterStates{}
			for _, st := range tt.seq {
				m.Merge("A", st)
			}
			if m["A"] != tt.want {
				t.Fatalf("got %s, want %s", m["A"], tt.want)
			}
		})
	}
}

func TestLetterStatesNeverRegress(t *testing.T) {
	rank := map[Status]int{W: 1, D: 2, R: 3}
	all := []Status{W, D, R}
	rng := rand.New(rand.NewSource(11))
	m := LetterStates{}
	for i := 0; i < 500; i++ {
		letter := string(rune('A' + rng.Intn(4)))
		before, had := m[letter]
		m.Merge(letter, all[rng.Intn(len(all))])
		after := m[letter]
		if had && rank[after] < rank[before] {
			t.Fatalf("%s regressed from %s to %s", letter, before, after)
		}
	}
}

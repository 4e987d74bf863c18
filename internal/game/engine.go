// internal/game/engine.go
//
// Guess evaluation and keyboard hint aggregation.
// Responsibilities:
//   - Score a full guess against the target with the two-pass algorithm.
//   - Fold scored letters into the keyboard hint map without ever downgrading.
//
// Notes:
//   - Letters are compared by character only; transient typing/wordlistError
//     tags on the input are ignored.
//   - Inputs are uppercase A–Z; Session normalises them before they get here.

package game

// Evaluate scores guess against target and reports whether every position
// matched. guess and target must have the same length.
//
// Pass 1:
//   - Equal positions are right; every other position is tentatively wrong
//     and its target letter goes into the missing-letter pool.
//
// Pass 2 (only when pass 1 left mismatches):
//   - Walking the wrong letters in guess order, a letter found in the pool
//     becomes displaced and consumes one copy from it.
//
// The pool holds target letters, not guess letters: EERIE against THEME
// marks the first E displaced and the second wrong, since THEME has only
// one E left after the exact match.
func Evaluate(guess Guess, target string) (Guess, bool) {
	n := len(guess)
	out := make(Guess, n)

	// Missing-letter pool, counted per letter A..Z.
	var missing [26]int
	pending := 0

	for i := 0; i < n; i++ {
		c := guess[i].Char
		t := target[i : i+1]
		if c == t {
			out[i] = Letter{Char: c, Status: StatusRight}
			continue
		}
		out[i] = Letter{Char: c, Status: StatusWrong}
		if j := idx(t); j >= 0 {
			missing[j]++
		}
		pending++
	}

	isRight := pending == 0
	if isRight {
		return out, true
	}

	for i := range out {
		if out[i].Status != StatusWrong {
			continue
		}
		if j := idx(out[i].Char); j >= 0 && missing[j] > 0 {
			out[i].Status = StatusDisplaced
			missing[j]--
		}
	}
	return out, false
}

// LetterStates maps an uppercase letter to the best status seen for it.
type LetterStates map[string]Status

// Merge records st for letter with precedence right > displaced > wrong.
// A right hint is locked in and a displaced hint is never turned back into
// wrong; anything else is overwritten.
func (m LetterStates) Merge(letter string, st Status) {
	if cur, ok := m[letter]; ok {
		if cur == StatusRight {
			return
		}
		if cur == StatusDisplaced && st == StatusWrong {
			return
		}
	}
	m[letter] = st
}

// MergeGuess folds every letter of a scored guess into m.
func (m LetterStates) MergeGuess(g Guess) {
	for _, l := range g {
		m.Merge(l.Char, l.Status)
	}
}

func (m LetterStates) clone() LetterStates {
	out := make(LetterStates, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// idx maps a one-letter uppercase string to 0..25, or -1.
func idx(s string) int {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return -1
	}
	return int(s[0] - 'A')
}

// internal/words/words.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply Random, IsAllowed, IsAnswer and Stats.
//
// Word Lists:
//   - "answers": candidate targets (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. If both AnswersFile and AllowedFile are set,
//      load answers from the first and allowed guesses from the second.
//   2. If only AllowedFile is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If only AnswersFile is set,
//      load answers from it and take allowed guesses from the embedded list.
//   4. If neither is set,
//      fall back to the embedded lists in package assets.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); anything else is dropped.
//   • Lists are normalized to lowercase.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/Julianoze/letreco/assets"
	"github.com/Julianoze/letreco/internal/game"
)

// ErrNoAnswers is returned when loading leaves the answer pool empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Sources names the files to load. Empty fields mean "use embedded".
type Sources struct {
	AnswersFile string
	AllowedFile string
}

// Paths returns the configured file paths.
func (s Sources) Paths() []string {
	var out []string
	for _, p := range []string{s.AnswersFile, s.AllowedFile} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// List is an immutable pair of answer and allowed-guess sets.
type List struct {
	answers    []string            // canonical answers, file order
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
}

// Load reads the lists described by src.
func Load(src Sources) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}

	case src.AnswersFile == "" && src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	case src.AnswersFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = embedded(assets.AllowedList); err != nil {
			return nil, err
		}

	default:
		if ansList, err = embedded(assets.AnswersList); err != nil {
			return nil, err
		}
		if allowList, err = embedded(assets.AllowedList); err != nil {
			return nil, err
		}
	}

	return New(ansList, allowList)
}

// New builds a List from in-memory words. Invalid words are dropped.
func New(answers, allowed []string) (*List, error) {
	ans := normalize(answers)
	l := &List{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	if len(l.answers) == 0 {
		return nil, ErrNoAnswers
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func embedded(fn func() ([]string, error)) ([]string, error) {
	lines, err := fn()
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	return lines, nil
}

// normalize lowercases, trims and keeps only valid words, dropping repeats.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		w := strings.TrimSpace(strings.ToLower(s))
		if len(w) != game.WordSize || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Answers returns a copy of the answer pool in load order.
func (l *List) Answers() []string {
	out := make([]string, len(l.answers))
	copy(out, l.answers)
	return out
}

// Random returns a cryptographically random answer.
func (l *List) Random() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	return l.answers[n.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

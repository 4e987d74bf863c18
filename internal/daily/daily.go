package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DefaultEpoch is the date of puzzle #1.
var DefaultEpoch = time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC)

// Word is the puzzle for one day.
type Word struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
	Index  int    `json:"-"`
	Word   string `json:"-"`
}

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Number is the 1-based puzzle number for t counted from epoch.
// Dates before the epoch are puzzle #1.
func Number(t, epoch time.Time) int {
	day := func(x time.Time) time.Time {
		x = x.UTC()
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
	}
	n := int(day(t).Sub(day(epoch)).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}

// Pick selects the puzzle for t from answers.
func Pick(t time.Time, salt string, epoch time.Time, answers []string) Word {
	w := Word{Number: Number(t, epoch), Date: DateKey(t), Index: -1}
	if len(answers) == 0 {
		return w
	}
	w.Index = WordIndex(t, salt, len(answers))
	w.Word = answers[w.Index]
	return w
}

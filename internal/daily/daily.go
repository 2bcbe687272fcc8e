// internal/daily/daily.go
//
// "Mots du jour": a small set of entries featured for one UTC day.
// The choice is a pure function of the date and a server-side salt, so every
// client sees the same words all day and nobody can predict tomorrow's without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/robalobadob/lexique/internal/lexicon"
)

// DefaultCount is the number of featured entries when none is configured.
const DefaultCount = 3

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Featured returns up to count distinct playable entries for the day of date.
// The result only depends on the UTC date, salt and the lexicon contents.
func Featured(lex *lexicon.Lexicon, date time.Time, salt string, count int) []lexicon.Entry {
	pool := lex.Playable()
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	if count > len(pool) {
		count = len(pool)
	}

	out := make([]lexicon.Entry, 0, count)
	taken := make(map[int]bool, count)
	for k := 0; len(out) < count && k < 4*count; k++ {
		i := WordIndex(date, salt+"#"+strconv.Itoa(k), len(pool))
		if taken[i] {
			continue
		}
		taken[i] = true
		out = append(out, pool[i])
	}
	// Collisions: fill from the last pick onwards.
	for i := 0; len(out) < count; i++ {
		if !taken[i] {
			taken[i] = true
			out = append(out, pool[i])
		}
	}
	return out
}

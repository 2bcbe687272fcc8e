package game

import (
	"crypto/rand"
	"math/big"
)

// Rand is the random source used for sampling and shuffling.
// *math/rand.Rand satisfies it; tests seed one for determinism.
type Rand interface {
	Intn(n int) int
}

type cryptoRand struct{}

func (cryptoRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// CryptoRand is the default source, backed by crypto/rand.
var CryptoRand Rand = cryptoRand{}

// Shuffle returns a uniformly shuffled copy of s (Fisher–Yates).
func Shuffle[T any](r Rand, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n elements of s drawn without replacement.
func Sample[T any](r Rand, s []T, n int) []T {
	shuffled := Shuffle(r, s)
	if n < len(shuffled) {
		return shuffled[:n]
	}
	return shuffled
}

// Package seed provides the reproducible randomness used by capsule builds:
// a string hash, a xorshift generator and a Fisher-Yates shuffle.
// Identical seeds always yield identical sequences across runs and platforms.
package seed

import "unicode/utf16"

// Hash folds a string into an int32 with a rolling multiply-add (h*31 + c)
// over its UTF-16 code units, so characters outside the BMP contribute their
// surrogate pair. Order-sensitive; wraps on overflow.
func Hash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return h
}

// Rand is a xorshift32 generator. The zero value is not usable; call NewRand.
type Rand struct {
	state uint32
}

// zeroSeedState replaces a zero seed, which would make xorshift emit zeros forever.
const zeroSeedState = 0x9E3779B9

// NewRand returns a generator seeded with seed.
func NewRand(seed int32) *Rand {
	s := uint32(seed)
	if s == 0 {
		s = zeroSeedState
	}
	return &Rand{state: s}
}

// Float64 advances the generator and returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return float64(x) / 4294967296.0
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle returns a shuffled copy of items; the input is not modified.
func Shuffle[T any](items []T, rng *Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

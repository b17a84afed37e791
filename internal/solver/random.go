package solver

import (
	"math/rand"
	"time"
)

// Random is the seeded entropy source threaded through the solver and its
// operators. Two instances built with the same seed produce identical draw
// sequences for identical call sequences, which keeps solve runs
// reproducible. Not safe for concurrent use; each Solver owns its own.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random seeded from the wall clock.
func NewRandom() *Random {
	return Seeded(uint64(time.Now().UnixNano()))
}

// Seeded returns a deterministic Random for the given seed.
func Seeded(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(int64(seed)))}
}

// Uint32 draws a uniform unsigned 32-bit integer.
func (r *Random) Uint32() uint32 { return r.rng.Uint32() }

// Float64 draws a uniform float in [0, 1).
func (r *Random) Float64() float64 { return r.rng.Float64() }

// RangeInt draws a uniform integer in [lo, hi). Returns lo when the range is
// empty.
func (r *Random) RangeInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo)
}

// RangeFloat64 draws a uniform float in [lo, hi).
func (r *Random) RangeFloat64(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// Perm draws a random permutation of [0, n).
func (r *Random) Perm(n int) []int { return r.rng.Perm(n) }

// Chance returns true with probability num/den. num == den is always true
// and consumes no entropy, so a certain event never perturbs the stream.
func (r *Random) Chance(num, den float64) bool {
	if num == den {
		return true
	}
	return r.Float64() < num/den
}

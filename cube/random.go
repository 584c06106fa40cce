package cube

import (
	"math/rand"
	"time"
)

// Random draws uniform integers in the inclusive range [lo, hi].
type Random interface {
	IntRange(lo, hi int) int
}

type seededRandom struct {
	rng *rand.Rand
}

// NewRandom returns a generator that replays the same sequence for the same seed.
func NewRandom(seed int64) Random {
	return &seededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRandom) IntRange(lo, hi int) int {
	return lo + r.rng.Intn(hi-lo+1)
}

// Clock is the monotonic time source pacing gravity.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock reads the wall clock, time.Time carries the monotonic reading.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

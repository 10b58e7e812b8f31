package random

import (
	"errors"
	"math"
	"time"
)

var ErrEmptyCollection = errors.New("cannot select from an empty collection")

const (
	defaultX  = 123456789
	defaultY  = 362436069
	defaultZ  = 521288629
	warmUp    = 32
	maxUint32 = float64(math.MaxUint32)
)

// Random is a xorshift128 generator. The whole composition engine draws
// from one of these, so the order of draws is part of the output.
// It is not safe for concurrent use.
type Random struct {
	x, y, z, w uint32
}

func New(seed uint32) *Random {
	r := &Random{}
	r.Seed(seed)
	return r
}

// NewRandom returns a generator seeded from the clock.
func NewRandom() *Random {
	r := &Random{}
	r.Randomize()
	return r
}

// Seed discards all state and restarts the stream for seed.
func (r *Random) Seed(seed uint32) {
	r.w = seed
	r.x = defaultX
	r.y = defaultY
	r.z = defaultZ
	for i := 0; i < warmUp; i++ {
		r.Uint32()
	}
}

func (r *Random) Randomize() {
	r.Seed(uint32(time.Now().UnixNano()))
}

func (r *Random) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x = r.y
	r.y = r.z
	r.z = r.w
	r.w = r.w ^ (r.w >> 19) ^ (t ^ (t >> 8))
	return r.w
}

// Float returns a value in [lo, hi).
func (r *Random) Float(lo, hi float64) float64 {
	v := lo + (float64(r.Uint32())/maxUint32)*(hi-lo)
	if v >= hi && hi > lo {
		// only reachable when the draw is exactly MaxUint32
		return math.Nextafter(hi, lo)
	}
	return v
}

// Int returns a value in [lo, hi], both inclusive.
func (r *Random) Int(lo, hi int) int {
	v := int(math.Floor(r.Float(float64(lo), float64(hi)+1)))
	if v > hi {
		return hi
	}
	return v
}

// Bool is true with probability p.
func (r *Random) Bool(p float64) bool {
	return r.Float(0, 1) < p
}

// Select picks one element uniformly.
func Select[T any](r *Random, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCollection
	}
	return items[r.Int(0, len(items)-1)], nil
}

// Normal returns a step function drawing one gaussian value per call
// (Marsaglia polar method).
func (r *Random) Normal(mean, stddev float64) func() float64 {
	return func() float64 {
		var x, y, s float64
		for {
			x = r.Float(0, 1)*2 - 1
			y = r.Float(0, 1)*2 - 1
			s = x*x + y*y
			if s != 0 && s <= 1 {
				break
			}
		}
		return mean + stddev*y*math.Sqrt(-2*math.Log(s)/s)
	}
}

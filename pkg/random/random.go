// Package random provides the uniform random source injected into the
// layout generator, plus deterministic stand-ins for tests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source draws uniform reals. Implementations return a value in [lo, hi];
// when lo == hi they return lo.
type Source interface {
	Uniform(lo, hi float64) float64
}

// Seeded is a reproducible Source backed by a PCG generator.
// A Seeded value is not safe for concurrent use; give each worker its own.
type Seeded struct {
	seed uint64
	r    *rand.Rand
}

// New returns a Source seeded with seed. The same seed always yields the
// same draw sequence.
func New(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// Uniform returns a value in [lo, hi].
func (s *Seeded) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// NewSeed returns a fresh non-zero seed from the OS entropy source.
func NewSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64() | 1
	}
	if s := binary.LittleEndian.Uint64(b[:]); s != 0 {
		return s
	}
	return 1
}

// Min always returns the lower bound.
type Min struct{}

func (Min) Uniform(lo, _ float64) float64 { return lo }

// Max always returns the upper bound.
type Max struct{}

func (Max) Uniform(_, hi float64) float64 { return hi }

// Fraction returns lo + F*(hi-lo) for a fixed F in [0, 1].
type Fraction float64

func (f Fraction) Uniform(lo, hi float64) float64 {
	return lo + float64(f)*(hi-lo)
}

// Recorder wraps a Source and records every requested interval and result.
type Recorder struct {
	Source Source
	Calls  []Call
}

// Call is one recorded draw.
type Call struct {
	Lo, Hi, Value float64
}

func (r *Recorder) Uniform(lo, hi float64) float64 {
	v := r.Source.Uniform(lo, hi)
	r.Calls = append(r.Calls, Call{Lo: lo, Hi: hi, Value: v})
	return v
}

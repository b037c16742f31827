// Package rng defines the uniform random source the synthesizer draws noise
// and preset jitter from.
package rng

import (
	"math/rand"
	"sync"
)

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }

// Default is the process-wide unseeded source.
var Default Source = global{}

// NewSeeded returns a reproducible source.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Signed maps a draw to [-1, 1).
func Signed(src Source) float64 {
	return src.Float64()*2 - 1
}

// Intn draws an integer in [0, n).
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Sequence replays a fixed list of values, wrapping at the end. An empty
// sequence always yields 0. It is safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	vals []float64
	pos  int
}

func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: append([]float64(nil), vals...)}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.pos]
	s.pos = (s.pos + 1) % len(s.vals)
	return v
}

// Draws returns how many values have been consumed modulo the sequence
// length.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

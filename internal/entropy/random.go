// Package entropy provides the pluggable randomness used by combat rolls.
// The default source draws from crypto/rand; tests inject fixed sources
// for deterministic outcomes.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float() float64
}

// Crypto is the default non-deterministic source.
type Crypto struct{}

// Float returns a uniform float64 in [0, 1) from crypto/rand.
func (Crypto) Float() float64 {
	return cryptoRandFloat()
}

// Fixed always returns the same value; for deterministic tests.
type Fixed float64

// Float returns the fixed value.
func (f Fixed) Float() float64 {
	return float64(f)
}

// Sequence replays a fixed series of values, cycling when exhausted.
type Sequence struct {
	Values []float64
	next   int
}

// Float returns the next value in the series.
func (s *Sequence) Float() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe midpoint default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

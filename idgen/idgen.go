// Package idgen provides resettable sequential counters used for instance
// numbering and log sequence numbers.
package idgen

import "sync/atomic"

// ID is a sequence number. The first ID a Sequence emits is 1.
type ID uint64

// Generator produces unique identifiers.
type Generator interface {
	Next() ID
}

// Sequence is a monotonically increasing counter that can be rewound to its
// initial state.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence returns a sequence whose first emitted ID is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next advances the sequence and returns the new value.
func (s *Sequence) Next() ID {
	return ID(s.last.Add(1))
}

// Current returns the most recently emitted ID, or 0 if none was emitted
// since creation or the last Reset.
func (s *Sequence) Current() ID {
	return ID(s.last.Load())
}

// Reset rewinds the sequence so that the next call to Next returns 1.
func (s *Sequence) Reset() {
	s.last.Store(0)
}

var _ Generator = (*Sequence)(nil)

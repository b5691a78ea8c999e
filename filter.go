package fpbench

import (
	"errors"
	"iter"
)

var (
	// ErrInvalidCapacity is returned when a filter cannot be constructed for
	// the requested number of bits.
	ErrInvalidCapacity = errors.New("fpbench: invalid filter capacity")

	// ErrStreamExhausted is returned when a key stream is asked for more keys
	// than its range holds.
	ErrStreamExhausted = errors.New("fpbench: key stream exhausted")

	// ErrTrialRange is returned when a trial index has no key-space lane.
	ErrTrialRange = errors.New("fpbench: trial index out of range")
)

// Filter is the capability set every measured membership filter exposes.
//
// Filters have one-sided error: Check must return true for every item
// previously passed to Extend. Check must not mutate the set of inserted
// items.
type Filter[X any] interface {
	// Check reports whether x might be in the filter.
	Check(x X) bool
	// NumHashes returns the number of probes the filter was configured with.
	NumHashes() int
	// Extend inserts every item of the sequence.
	Extend(items iter.Seq[X])
	// Name identifies the implementation.
	Name() string
}

// Implementation pairs a filter's name with its constructor. New returns a
// fresh, empty filter with numBits bits of capacity, sized for numItems
// items. Inserting more than numItems items is allowed.
type Implementation[X any] struct {
	Name string
	New  func(numBits, numItems uint64) (Filter[X], error)
}

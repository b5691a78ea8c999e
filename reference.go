package fpbench

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

// ReferenceName is the name under which the reference filter reports.
const ReferenceName = "Theoretical Best"

// Reference is an idealized bloom filter with no hash function at all.
//
// Every insert sets k uniformly random bits and every check probes k freshly
// drawn random bits, so no item is ever correlated with another. The result
// is the lowest false positive rate any filter limited to k probes into m
// bits can achieve, which makes it the baseline other implementations are
// compared against.
//
// Reference ignores the values it is given, so it does not satisfy the
// one-sided error guarantee for the items themselves; it models only the
// bit occupancy after a number of inserts. Randomness comes from the
// runtime-seeded math/rand/v2 source and is intentionally not reproducible.
type Reference[X any] struct {
	bits    *bitset.BitSet
	numBits uint64
	k       int
	count   uint64
}

// NewReference creates a reference filter of numBits bits sized for
// numItems items. The number of probes is max(1, round(ln(2) * m / n)).
func NewReference[X any](numBits, numItems uint64) (*Reference[X], error) {
	if numBits == 0 {
		return nil, fmt.Errorf("%w: numBits cannot be zero", ErrInvalidCapacity)
	}
	return &Reference[X]{
		bits:    bitset.New(uint(numBits)),
		numBits: numBits,
		k:       referenceHashes(numBits, numItems),
	}, nil
}

// ReferenceImplementation returns the reference filter as a measurable
// implementation.
func ReferenceImplementation[X any]() Implementation[X] {
	return Implementation[X]{
		Name: ReferenceName,
		New: func(numBits, numItems uint64) (Filter[X], error) {
			return NewReference[X](numBits, numItems)
		},
	}
}

func referenceHashes(numBits, numItems uint64) int {
	if numItems == 0 {
		numItems = 1
	}
	k := math.Round(math.Ln2 * float64(numBits) / float64(numItems))
	return max(1, int(k))
}

// Check probes k random positions and reports whether all of them are set.
func (r *Reference[X]) Check(X) bool {
	for range r.k {
		if !r.bits.Test(uint(rand.Uint64N(r.numBits))) {
			return false
		}
	}
	return true
}

// Extend sets k random positions for every item of the sequence.
func (r *Reference[X]) Extend(items iter.Seq[X]) {
	for range items {
		for range r.k {
			r.bits.Set(uint(rand.Uint64N(r.numBits)))
		}
		r.count++
	}
}

// NumHashes returns the number of probes per insert and check.
func (r *Reference[X]) NumHashes() int {
	return r.k
}

// Count returns the number of inserts performed.
func (r *Reference[X]) Count() uint64 {
	return r.count
}

// FillRatio returns the proportion of bits that are set.
func (r *Reference[X]) FillRatio() float64 {
	return float64(r.bits.Count()) / float64(r.numBits)
}

func (r *Reference[X]) Name() string {
	return ReferenceName
}

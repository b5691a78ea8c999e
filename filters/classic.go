package filters

import (
	"fmt"
	"iter"

	bab "github.com/bits-and-blooms/bloom/v3"
	atomicbloom "github.com/ericvolp12/atomic-bloom"

	"github.com/jcalabro/fpbench"
)

const (
	// BitsAndBloomsName is the name of the bits-and-blooms/bloom adapter.
	BitsAndBloomsName = "bloom"
	// AtomicBloomName is the name of the ericvolp12/atomic-bloom adapter.
	AtomicBloomName = "atomic-bloom"
)

// BitsAndBlooms adapts a classic (unblocked) bits-and-blooms/bloom filter.
// Keys are fed to the filter as their big-endian encoding, which the
// library hashes itself.
type BitsAndBlooms struct {
	f *bab.BloomFilter
}

// NewBitsAndBlooms creates a bits-and-blooms filter of numBits bits with the
// optimal number of hashes for numItems items.
func NewBitsAndBlooms(numBits, numItems uint64) (*BitsAndBlooms, error) {
	if numBits == 0 {
		return nil, fmt.Errorf("%w: numBits cannot be zero", fpbench.ErrInvalidCapacity)
	}
	k := optimalHashes(numBits, numItems)
	return &BitsAndBlooms{f: bab.New(uint(numBits), uint(k))}, nil
}

// BitsAndBloomsImplementation returns the bits-and-blooms adapter as a
// measurable implementation.
func BitsAndBloomsImplementation() fpbench.Implementation[uint64] {
	return fpbench.Implementation[uint64]{
		Name: BitsAndBloomsName,
		New: func(numBits, numItems uint64) (fpbench.Filter[uint64], error) {
			return NewBitsAndBlooms(numBits, numItems)
		},
	}
}

func (b *BitsAndBlooms) Check(key uint64) bool {
	var buf [8]byte
	return b.f.Test(keyBytes(&buf, key))
}

func (b *BitsAndBlooms) Extend(keys iter.Seq[uint64]) {
	var buf [8]byte
	for key := range keys {
		b.f.Add(keyBytes(&buf, key))
	}
}

func (b *BitsAndBlooms) NumHashes() int {
	return int(b.f.K())
}

func (b *BitsAndBlooms) Name() string {
	return BitsAndBloomsName
}

// AtomicBloom adapts ericvolp12/atomic-bloom, a lock-free fork of
// bits-and-blooms/bloom. It hashes keys the same way, so its curve should
// match BitsAndBlooms.
type AtomicBloom struct {
	f *atomicbloom.BloomFilter
	k int
}

// NewAtomicBloom creates an atomic-bloom filter of numBits bits with the
// optimal number of hashes for numItems items.
func NewAtomicBloom(numBits, numItems uint64) (*AtomicBloom, error) {
	if numBits == 0 {
		return nil, fmt.Errorf("%w: numBits cannot be zero", fpbench.ErrInvalidCapacity)
	}
	k := optimalHashes(numBits, numItems)
	return &AtomicBloom{f: atomicbloom.New(uint(numBits), uint(k)), k: k}, nil
}

// AtomicBloomImplementation returns the atomic-bloom adapter as a measurable
// implementation.
func AtomicBloomImplementation() fpbench.Implementation[uint64] {
	return fpbench.Implementation[uint64]{
		Name: AtomicBloomName,
		New: func(numBits, numItems uint64) (fpbench.Filter[uint64], error) {
			return NewAtomicBloom(numBits, numItems)
		},
	}
}

func (a *AtomicBloom) Check(key uint64) bool {
	var buf [8]byte
	return a.f.Test(keyBytes(&buf, key))
}

func (a *AtomicBloom) Extend(keys iter.Seq[uint64]) {
	var buf [8]byte
	for key := range keys {
		a.f.Add(keyBytes(&buf, key))
	}
}

func (a *AtomicBloom) NumHashes() int {
	return a.k
}

func (a *AtomicBloom) Name() string {
	return AtomicBloomName
}

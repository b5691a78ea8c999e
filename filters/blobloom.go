package filters

import (
	"fmt"
	"iter"

	"github.com/greatroar/blobloom"

	"github.com/jcalabro/fpbench"
)

const (
	// BlobloomXXH3Name is the name of the blobloom adapter pre-hashing with xxh3.
	BlobloomXXH3Name = "blobloom - xxh3"
	// BlobloomXXHashName is the name of the blobloom adapter pre-hashing with xxhash.
	BlobloomXXHashName = "blobloom - xxhash"

	// blobloom synthesizes at least two hashes from the one it is given.
	minBlobloomK = 2
)

// Blobloom adapts greatroar/blobloom, a blocked bloom filter that takes a
// precomputed 64-bit hash instead of a key. The adapter reduces each key
// with its Hasher before handing it over; blobloom derives its probes from
// that value as-is.
type Blobloom struct {
	f    *blobloom.Filter
	hash Hasher
	k    int
	name string
}

// NewBlobloom creates a blobloom filter of numBits bits sized for numItems
// items that reduces keys with hash. numBits must be a non-zero multiple of
// BlockBits, since blobloom silently rounds other sizes up.
func NewBlobloom(name string, hash Hasher, numBits, numItems uint64) (*Blobloom, error) {
	if numBits == 0 || numBits%BlockBits != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a non-zero multiple of %d", fpbench.ErrInvalidCapacity, numBits, BlockBits)
	}
	if hash == nil {
		return nil, fmt.Errorf("filters: blobloom %q needs a hasher", name)
	}
	k := max(optimalHashes(numBits, numItems), minBlobloomK)
	return &Blobloom{
		f:    blobloom.New(numBits, k),
		hash: hash,
		k:    k,
		name: name,
	}, nil
}

// BlobloomImplementation returns a blobloom adapter using hash as a
// measurable implementation called name.
func BlobloomImplementation(name string, hash Hasher) fpbench.Implementation[uint64] {
	return fpbench.Implementation[uint64]{
		Name: name,
		New: func(numBits, numItems uint64) (fpbench.Filter[uint64], error) {
			return NewBlobloom(name, hash, numBits, numItems)
		},
	}
}

func (b *Blobloom) Check(key uint64) bool {
	return b.f.Has(b.hash(key))
}

func (b *Blobloom) Extend(keys iter.Seq[uint64]) {
	for key := range keys {
		b.f.Add(b.hash(key))
	}
}

func (b *Blobloom) NumHashes() int {
	return b.k
}

func (b *Blobloom) Name() string {
	return b.name
}

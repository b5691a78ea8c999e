package filters

import (
	"fmt"
	"iter"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/jcalabro/fpbench"
)

// cacheLineSize is the size of a CPU cache line in bytes.
const cacheLineSize = 64

const (
	// BlockedName is the name of the blocked one-hashing filter.
	BlockedName = "gloom"
	// AtomicBlockedName is the name of its atomic variant.
	AtomicBlockedName = "gloom (atomic)"
)

// Blocked is a bloom filter using cache-line blocked one-hashing.
//
// The filter divides memory into 512-bit (64-byte) blocks that fit in a
// single CPU cache line. Each block is partitioned into k segments using
// distinct prime sizes, so a single xxh3 hash of the key yields k bit
// positions via modulo operations, all within one cache line.
//
// Blocked is not safe for concurrent use.
type Blocked struct {
	raw       []byte   // Raw allocation to keep aligned memory alive for GC
	blocks    []uint64 // 8 uint64s per block = 512 bits (cache-line aligned)
	numBlocks uint64
	k         uint32
	primes    []uint32
	offsets   []uint32
	count     uint64
}

// NewBlocked creates a blocked filter of numBits bits sized for numItems
// items. numBits must be a non-zero multiple of BlockBits.
func NewBlocked(numBits, numItems uint64) (*Blocked, error) {
	numBlocks, k, err := checkBlocked(numBits, numItems)
	if err != nil {
		return nil, err
	}
	primes := primePartitions[k]
	raw, blocks := makeAlignedUint64Slice(int(numBlocks * BlockWords))
	return &Blocked{
		raw:       raw,
		blocks:    blocks,
		numBlocks: numBlocks,
		k:         k,
		primes:    primes,
		offsets:   computeOffsets(primes),
	}, nil
}

// BlockedImplementation returns the blocked filter as a measurable
// implementation.
func BlockedImplementation() fpbench.Implementation[uint64] {
	return fpbench.Implementation[uint64]{
		Name: BlockedName,
		New: func(numBits, numItems uint64) (fpbench.Filter[uint64], error) {
			return NewBlocked(numBits, numItems)
		},
	}
}

func checkBlocked(numBits, numItems uint64) (uint64, uint32, error) {
	if numBits == 0 || numBits%BlockBits != 0 {
		return 0, 0, fmt.Errorf("%w: %d bits is not a non-zero multiple of %d", fpbench.ErrInvalidCapacity, numBits, BlockBits)
	}
	numBlocks, k := blockedParams(numBits, numItems)
	return numBlocks, k, nil
}

// makeAlignedUint64Slice allocates a cache-line aligned slice of uint64.
// Returns the raw byte slice (to keep alive for GC) and the aligned uint64 slice.
func makeAlignedUint64Slice(n int) ([]byte, []uint64) {
	raw := make([]byte, n*8+cacheLineSize-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := (cacheLineSize - int(addr%cacheLineSize)) % cacheLineSize
	aligned := unsafe.Slice((*uint64)(unsafe.Pointer(&raw[offset])), n)
	return raw, aligned
}

// Add adds key to the filter.
func (f *Blocked) Add(key uint64) {
	blockIdx, intraHash := hashSplit(XXH3(key), f.numBlocks)
	blockBase := blockIdx * BlockWords

	// One-hashing: same hash value mod different primes gives independent positions
	for i := uint32(0); i < f.k; i++ {
		bitPos := f.offsets[i] + (intraHash % f.primes[i])
		f.blocks[blockBase+uint64(bitPos/64)] |= 1 << (bitPos % 64)
	}
	f.count++
}

// Check reports whether key might be in the filter.
func (f *Blocked) Check(key uint64) bool {
	blockIdx, intraHash := hashSplit(XXH3(key), f.numBlocks)
	blockBase := blockIdx * BlockWords

	for i := uint32(0); i < f.k; i++ {
		bitPos := f.offsets[i] + (intraHash % f.primes[i])
		if f.blocks[blockBase+uint64(bitPos/64)]&(1<<(bitPos%64)) == 0 {
			return false
		}
	}
	return true
}

// Extend adds every key of the sequence.
func (f *Blocked) Extend(keys iter.Seq[uint64]) {
	for key := range keys {
		f.Add(key)
	}
}

// NumHashes returns the number of partitions probed per key.
func (f *Blocked) NumHashes() int {
	return int(f.k)
}

func (f *Blocked) Name() string {
	return BlockedName
}

// Cap returns the capacity of the filter in bits.
func (f *Blocked) Cap() uint64 {
	return f.numBlocks * BlockBits
}

// Count returns the number of keys added.
func (f *Blocked) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Blocked) EstimatedFillRatio() float64 {
	var setBits uint64
	for _, word := range f.blocks {
		setBits += uint64(bits.OnesCount64(word))
	}
	return float64(setBits) / float64(f.Cap())
}

// EstimatedFalsePositiveRate returns the classic estimate for the filter's
// size, hash count and number of keys added. Blocking makes the real rate
// somewhat higher.
func (f *Blocked) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.Cap(), int(f.k), f.count)
}

// AtomicBlocked is the blocked filter with atomic bit updates. Add and
// Check may be called concurrently; its accuracy is identical to Blocked.
type AtomicBlocked struct {
	raw       []byte          // Raw allocation to keep aligned memory alive for GC
	blocks    []atomic.Uint64 // 8 atomic uint64s per block = 512 bits (cache-line aligned)
	numBlocks uint64
	k         uint32
	primes    []uint32
	offsets   []uint32
	count     atomic.Uint64
}

// NewAtomicBlocked creates an atomic blocked filter of numBits bits sized for
// numItems items. numBits must be a non-zero multiple of BlockBits.
func NewAtomicBlocked(numBits, numItems uint64) (*AtomicBlocked, error) {
	numBlocks, k, err := checkBlocked(numBits, numItems)
	if err != nil {
		return nil, err
	}
	primes := primePartitions[k]
	raw, blocks := makeAlignedAtomicUint64Slice(int(numBlocks * BlockWords))
	return &AtomicBlocked{
		raw:       raw,
		blocks:    blocks,
		numBlocks: numBlocks,
		k:         k,
		primes:    primes,
		offsets:   computeOffsets(primes),
	}, nil
}

// AtomicBlockedImplementation returns the atomic blocked filter as a
// measurable implementation.
func AtomicBlockedImplementation() fpbench.Implementation[uint64] {
	return fpbench.Implementation[uint64]{
		Name: AtomicBlockedName,
		New: func(numBits, numItems uint64) (fpbench.Filter[uint64], error) {
			return NewAtomicBlocked(numBits, numItems)
		},
	}
}

// makeAlignedAtomicUint64Slice allocates a cache-line aligned slice of atomic.Uint64.
func makeAlignedAtomicUint64Slice(n int) ([]byte, []atomic.Uint64) {
	// atomic.Uint64 is the same size as uint64 (8 bytes)
	const atomicSize = 8
	raw := make([]byte, n*atomicSize+cacheLineSize-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := (cacheLineSize - int(addr%cacheLineSize)) % cacheLineSize
	aligned := unsafe.Slice((*atomic.Uint64)(unsafe.Pointer(&raw[offset])), n)
	return raw, aligned
}

// Add adds key to the filter atomically.
func (f *AtomicBlocked) Add(key uint64) {
	blockIdx, intraHash := hashSplit(XXH3(key), f.numBlocks)
	blockBase := blockIdx * BlockWords

	for i := uint32(0); i < f.k; i++ {
		bitPos := f.offsets[i] + (intraHash % f.primes[i])
		f.blocks[blockBase+uint64(bitPos/64)].Or(uint64(1) << (bitPos % 64))
	}
	f.count.Add(1)
}

// Check reports whether key might be in the filter.
func (f *AtomicBlocked) Check(key uint64) bool {
	blockIdx, intraHash := hashSplit(XXH3(key), f.numBlocks)
	blockBase := blockIdx * BlockWords

	for i := uint32(0); i < f.k; i++ {
		bitPos := f.offsets[i] + (intraHash % f.primes[i])
		if f.blocks[blockBase+uint64(bitPos/64)].Load()&(1<<(bitPos%64)) == 0 {
			return false
		}
	}
	return true
}

// Extend adds every key of the sequence.
func (f *AtomicBlocked) Extend(keys iter.Seq[uint64]) {
	for key := range keys {
		f.Add(key)
	}
}

func (f *AtomicBlocked) NumHashes() int {
	return int(f.k)
}

func (f *AtomicBlocked) Name() string {
	return AtomicBlockedName
}

// Count returns the number of keys added.
func (f *AtomicBlocked) Count() uint64 {
	return f.count.Load()
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *AtomicBlocked) EstimatedFillRatio() float64 {
	var setBits uint64
	for i := range f.blocks {
		setBits += uint64(bits.OnesCount64(f.blocks[i].Load()))
	}
	return float64(setBits) / float64(f.numBlocks*BlockBits)
}

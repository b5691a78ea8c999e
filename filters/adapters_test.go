package filters

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcalabro/fpbench"
)

func randomKeys(seed uint64, n int) []uint64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	out := make([]uint64, n)
	for i := range out {
		out[i] = rng.Uint64()
	}
	return out
}

func seqOf(keys []uint64) func(func(uint64) bool) {
	return func(yield func(uint64) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

func TestNoFalseNegatives(t *testing.T) {
	const numBits = 1 << 15
	members := randomKeys(42, 4000)

	for _, impl := range All() {
		if impl.Name == fpbench.ReferenceName {
			// The reference filter sets random bits, not bits derived from keys.
			continue
		}
		t.Run(impl.Name, func(t *testing.T) {
			f, err := impl.New(numBits, uint64(len(members)))
			require.NoError(t, err)
			require.Equal(t, impl.Name, f.Name())

			// Extend in two rounds, the way a live filter grows.
			f.Extend(seqOf(members[:1000]))
			f.Extend(seqOf(members[1000:]))
			for _, key := range members {
				require.True(t, f.Check(key), "key %d missing", key)
			}
		})
	}
}

func TestAdaptersFalsePositiveRate(t *testing.T) {
	const (
		numBits  = 1 << 16
		numItems = numBits / 10
	)
	members := randomKeys(7, numItems)

	for _, impl := range All() {
		t.Run(impl.Name, func(t *testing.T) {
			f, err := impl.New(numBits, numItems)
			require.NoError(t, err)
			f.Extend(seqOf(members))

			// Ten bits per key puts every implementation well under 3%.
			rate := fpbench.FalsePositiveRate[uint64](f, keys(1<<63, 200_000))
			require.Less(t, rate, 0.03)
			require.Greater(t, rate, 0.0)
		})
	}
}

func TestAdaptersNumHashes(t *testing.T) {
	tests := []struct {
		name     string
		numBits  uint64
		numItems uint64
	}{
		{"sparse", 1 << 14, 100},
		{"ten bits per key", 1 << 14, 1638},
		{"dense", 1 << 14, 1 << 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := optimalHashes(tt.numBits, tt.numItems)

			bb, err := NewBitsAndBlooms(tt.numBits, tt.numItems)
			require.NoError(t, err)
			require.Equal(t, want, bb.NumHashes())

			ab, err := NewAtomicBloom(tt.numBits, tt.numItems)
			require.NoError(t, err)
			require.Equal(t, want, ab.NumHashes())

			bl, err := NewBlobloom(BlobloomXXH3Name, XXH3, tt.numBits, tt.numItems)
			require.NoError(t, err)
			require.Equal(t, max(want, minBlobloomK), bl.NumHashes())
		})
	}
}

func TestAdaptersInvalidCapacity(t *testing.T) {
	_, err := NewBitsAndBlooms(0, 10)
	require.ErrorIs(t, err, fpbench.ErrInvalidCapacity)

	_, err = NewAtomicBloom(0, 10)
	require.ErrorIs(t, err, fpbench.ErrInvalidCapacity)

	for _, numBits := range []uint64{0, 100, BlockBits + 1} {
		_, err = NewBlobloom(BlobloomXXHashName, XXHash, numBits, 10)
		require.ErrorIs(t, err, fpbench.ErrInvalidCapacity)
	}

	_, err = NewBlobloom("no hash", nil, BlockBits, 10)
	require.Error(t, err)
}

func TestHashers(t *testing.T) {
	require.Equal(t, uint64(12345), Identity(12345))
	require.Equal(t, XXH3(1), XXH3(1))
	require.NotEqual(t, XXH3(1), XXH3(2))
	require.NotEqual(t, XXHash(1), XXHash(2))
	require.NotEqual(t, XXH3(1), XXHash(1))

	var buf [8]byte
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, keyBytes(&buf, 0x0102))
}

func TestHashSplit(t *testing.T) {
	blockIdx, intra := hashSplit(0x0000000700000009, 5)
	require.Equal(t, uint64(2), blockIdx)
	require.Equal(t, uint32(9), intra)
}

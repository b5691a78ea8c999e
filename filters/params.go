package filters

import "math"

const (
	// BlockBits is the number of bits per block (cache line size).
	BlockBits = 512
	// BlockWords is the number of uint64s per block.
	BlockWords = BlockBits / 64 // 8

	minBlockedK = 3
	maxBlockedK = 14
)

// primePartitions contains pre-computed partition configurations for different
// k values. Each configuration contains k strictly distinct values that sum to
// exactly 512 bits (the block size).
//
// For even k values, all values are distinct primes.
// For odd k values, one value must be even (and thus non-prime, since 2 is too
// small for good modulo distribution) because the sum of an odd count of odd
// numbers is always odd, but the target sum (512) is even.
var primePartitions = map[uint32][]uint32{
	3:  {167, 173, 172},                                          // sum = 512 (172 is even filler)
	4:  {109, 127, 137, 139},                                     // sum = 512, all prime
	5:  {97, 101, 103, 109, 102},                                 // sum = 512 (102 is even filler)
	6:  {61, 79, 83, 89, 97, 103},                                // sum = 512, all prime
	7:  {61, 67, 71, 79, 83, 89, 62},                             // sum = 512 (62 is even filler)
	8:  {37, 47, 53, 61, 67, 71, 79, 97},                         // sum = 512, all prime
	9:  {41, 43, 47, 53, 59, 67, 71, 73, 58},                     // sum = 512 (58 is even filler)
	10: {31, 37, 41, 43, 47, 53, 59, 61, 67, 73},                 // sum = 512, all prime
	11: {29, 31, 37, 41, 43, 44, 47, 53, 59, 61, 67},             // sum = 512 (44 is even filler)
	12: {17, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 71},         // sum = 512, all prime
	13: {17, 19, 23, 29, 31, 37, 41, 43, 47, 52, 53, 59, 61},     // sum = 512 (52 is even filler)
	14: {11, 13, 17, 19, 23, 29, 31, 37, 41, 47, 53, 59, 61, 71}, // sum = 512, all prime
}

// optimalHashes returns max(1, round(ln(2) * m / n)), the number of hashes
// that minimises the false positive rate of a classic bloom filter with m
// bits holding n items. n == 0 is treated as 1.
func optimalHashes(numBits, numItems uint64) int {
	if numItems == 0 {
		numItems = 1
	}
	k := math.Round(math.Ln2 * float64(numBits) / float64(numItems))
	return max(1, int(k))
}

// blockedParams returns the block count and hash count of a blocked filter
// with numBits bits sized for numItems items. k is the classic optimum
// clamped to the range covered by primePartitions.
func blockedParams(numBits, numItems uint64) (numBlocks uint64, k uint32) {
	numBlocks = numBits / BlockBits
	k = uint32(min(max(optimalHashes(numBits, numItems), minBlockedK), maxBlockedK))
	return numBlocks, k
}

// computeOffsets computes the cumulative bit offsets for each partition.
// offset[i] = sum of primes[0..i-1]
func computeOffsets(primes []uint32) []uint32 {
	offsets := make([]uint32, len(primes))
	var cumulative uint32
	for i, p := range primes {
		offsets[i] = cumulative
		cumulative += p
	}
	return offsets
}

// EstimateFalsePositiveRate returns the classic bloom filter estimate
// (1 - e^(-kn/m))^k for m bits, k hashes and n items.
func EstimateFalsePositiveRate(numBits uint64, k int, items uint64) float64 {
	if numBits == 0 || items == 0 {
		return 0
	}
	m := float64(numBits)
	n := float64(items)
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*n/m), kf)
}

// Package filters adapts concrete bloom filters to [fpbench.Filter] so that
// their false positive rates can be measured side by side.
//
// # Implementations
//
// [Blocked] is a cache-line blocked filter using one-hashing with prime
// partitions: a single xxh3 hash selects a 512-bit block and, modulo k
// distinct primes that sum to 512, the k bits within it. [AtomicBlocked] is
// the same filter with atomic bit updates.
//
// [BitsAndBlooms] and [AtomicBloom] wrap classic bloom filters from
// github.com/bits-and-blooms/bloom and its atomic fork. They probe bits
// anywhere in the filter and come closest to the reference filter.
//
// [Blobloom] wraps github.com/greatroar/blobloom, a blocked filter that
// consumes pre-computed hashes. Keys are reduced with xxh3 or xxhash first.
//
// # Hash counts
//
// Each adapter picks round(ln(2) * m / n) hashes for m bits and n expected
// items, clamped to what the filter supports. The hash count therefore
// changes as the measured load grows, which tells the measurement when a
// filter has to be rebuilt rather than extended.
//
// [All] lists every implementation together with [fpbench.Reference];
// [Lookup] selects some of them by name.
package filters

package filters

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// Hasher reduces a key to the 64-bit hash a pre-hashed filter consumes.
type Hasher func(key uint64) uint64

// XXH3 hashes the big-endian encoding of key with xxh3.
func XXH3(key uint64) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return xxh3.Hash(buf[:])
}

// XXHash hashes the big-endian encoding of key with xxhash64.
func XXHash(key uint64) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:])
}

// Identity passes key through unchanged, for keys that are already hashes.
func Identity(key uint64) uint64 {
	return key
}

// hashSplit splits a 64-bit hash into block index and intra-block hash.
func hashSplit(h uint64, numBlocks uint64) (blockIdx uint64, intraHash uint32) {
	// Use upper 32 bits for block selection (better distribution)
	blockIdx = (h >> 32) % numBlocks
	// Use lower 32 bits for intra-block hashing
	intraHash = uint32(h)
	return
}

// keyBytes returns the big-endian encoding of key, for filters that take
// byte slices.
func keyBytes(buf *[8]byte, key uint64) []byte {
	binary.BigEndian.PutUint64(buf[:], key)
	return buf[:]
}

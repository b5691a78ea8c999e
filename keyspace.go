package fpbench

import (
	"fmt"
	"iter"
)

const (
	// MaxTrials is the number of disjoint key-space lanes, and therefore the
	// largest number of trials a measurement can run.
	MaxTrials = 256

	// laneBits is log2 of the number of keys in one lane. Two halves of
	// MaxTrials lanes each fill the 64-bit key space exactly.
	laneBits = 63 - 8

	nonMemberBase = uint64(1) << 63
)

// KeyRange is a deterministic stream of consecutive 64-bit keys. Key i of
// the stream is base+i.
type KeyRange struct {
	base uint64
	size uint64
}

// Partition returns the member and non-member key ranges of a trial.
//
// The key space is split into a member half and a non-member half, each cut
// into MaxTrials lanes. Trial t owns lane t of both halves, so no trial's
// members collide with any trial's non-members or with another trial's
// members, regardless of the order in which trials run.
func Partition(trial int) (members, nonMembers KeyRange, err error) {
	if trial < 0 || trial >= MaxTrials {
		return KeyRange{}, KeyRange{}, fmt.Errorf("%w: got %d, want [0, %d)", ErrTrialRange, trial, MaxTrials)
	}
	offset := uint64(trial) << laneBits
	members = KeyRange{base: offset, size: 1 << laneBits}
	nonMembers = KeyRange{base: nonMemberBase + offset, size: 1 << laneBits}
	return members, nonMembers, nil
}

// Base returns the first key of the range.
func (r KeyRange) Base() uint64 {
	return r.base
}

// Len returns the number of keys in the range.
func (r KeyRange) Len() uint64 {
	return r.size
}

// Contains reports whether key belongs to the range.
func (r KeyRange) Contains(key uint64) bool {
	return key >= r.base && key-r.base < r.size
}

// Slice returns keys lo through hi-1 of the stream.
func (r KeyRange) Slice(lo, hi uint64) (iter.Seq[uint64], error) {
	if lo > hi {
		return nil, fmt.Errorf("fpbench: invalid key slice [%d, %d)", lo, hi)
	}
	if hi > r.size {
		return nil, fmt.Errorf("%w: need %d keys, range holds %d", ErrStreamExhausted, hi, r.size)
	}
	start := r.base + lo
	end := r.base + hi
	return func(yield func(uint64) bool) {
		for k := start; k < end; k++ {
			if !yield(k) {
				return
			}
		}
	}, nil
}

// Block returns the i-th run of size consecutive keys of the stream.
func (r KeyRange) Block(i, size uint64) (iter.Seq[uint64], error) {
	if size == 0 || i >= r.size/size {
		return nil, fmt.Errorf("%w: block %d of %d keys, range holds %d", ErrStreamExhausted, i, size, r.size)
	}
	return r.Slice(i*size, (i+1)*size)
}

package fpbench

import (
	"iter"
	"math"
)

// checkpointStep is how much the exponent grows per checkpoint. The spacing
// between checkpoints doubles every 1/checkpointStep checkpoints.
const checkpointStep = 1.0 / 32

// Checkpoints generates the item counts at which a filter is measured.
//
// Each call to Next advances the count by 2^floor(step) and then grows step
// by 1/32, so checkpoints are dense at low item counts and roughly
// log-uniform beyond. The sequence is infinite; callers stop on their own
// condition. The zero value is ready to use.
type Checkpoints struct {
	cur  uint64
	step float64
}

// Next advances the schedule and returns the new item count.
func (c *Checkpoints) Next() uint64 {
	c.cur += uint64(1) << uint(math.Floor(c.step))
	c.step += checkpointStep
	return c.cur
}

// Current returns the most recently emitted item count, or 0 before the
// first call to Next.
func (c *Checkpoints) Current() uint64 {
	return c.cur
}

// Reset returns the schedule to its initial state.
func (c *Checkpoints) Reset() {
	*c = Checkpoints{}
}

// Schedule returns the checkpoint sequence from the start. Every range over
// the returned sequence starts a fresh schedule.
func Schedule() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		var c Checkpoints
		for {
			if !yield(c.Next()) {
				return
			}
		}
	}
}

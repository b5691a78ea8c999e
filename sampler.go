package fpbench

import "iter"

// StopRule names the condition that ended a sampling run.
type StopRule int

const (
	// StopExhausted means the non-member stream ran out.
	StopExhausted StopRule = iota
	// StopStable means enough false positives were seen for a stable estimate.
	StopStable
	// StopPrecise means a moderate number of false positives were seen over
	// a large sample.
	StopPrecise
	// StopCapped means at least one false positive was seen and the sample
	// reached its worst-case size.
	StopCapped
)

// Sampling thresholds. Changing any of these makes results incomparable
// with earlier runs.
const (
	stableFalsePositives  = 100
	preciseFalsePositives = 10
	preciseTested         = 1_000_000
	cappedFalsePositives  = 1
	cappedTested          = 100_000_000
)

func (r StopRule) String() string {
	switch r {
	case StopExhausted:
		return "exhausted"
	case StopStable:
		return "stable"
	case StopPrecise:
		return "precise"
	case StopCapped:
		return "capped"
	default:
		return "unknown"
	}
}

// SampleStats is the outcome of one sampling run.
type SampleStats struct {
	FalsePositives uint64
	Tested         uint64
	Rule           StopRule
}

// Rate returns the observed false positive rate, or 0 if nothing was tested.
func (s SampleStats) Rate() float64 {
	if s.Tested == 0 {
		return 0
	}
	return float64(s.FalsePositives) / float64(s.Tested)
}

// Sample tests items from nonMembers against f until one of the stopping
// rules fires or the stream ends. Every item of nonMembers must be absent
// from f.
//
// The rules are checked after every test, in order:
//  1. 100 false positives
//  2. at least 10 false positives and more than 1,000,000 tests
//  3. at least 1 false positive and more than 100,000,000 tests
func Sample[X any](f Filter[X], nonMembers iter.Seq[X]) SampleStats {
	var s SampleStats
	for x := range nonMembers {
		s.Tested++
		if f.Check(x) {
			s.FalsePositives++
		}
		switch {
		case s.FalsePositives >= stableFalsePositives:
			s.Rule = StopStable
			return s
		case s.FalsePositives >= preciseFalsePositives && s.Tested > preciseTested:
			s.Rule = StopPrecise
			return s
		case s.FalsePositives >= cappedFalsePositives && s.Tested > cappedTested:
			s.Rule = StopCapped
			return s
		}
	}
	s.Rule = StopExhausted
	return s
}

// FalsePositiveRate estimates the false positive rate of f using Sample.
func FalsePositiveRate[X any](f Filter[X], nonMembers iter.Seq[X]) float64 {
	return Sample(f, nonMembers).Rate()
}

package fpbench

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
)

const (
	// DefaultNumBits is the filter capacity used when none is configured.
	DefaultNumBits = 1 << 12
	// DefaultTrials is the number of independent trials per bracket.
	DefaultTrials = 8
	// DefaultSampleBudget is the number of non-members reserved for each
	// sampling run. It sits above the 100,000,000 test cap so that the cap
	// rule can fire.
	DefaultSampleBudget = 1 << 27
	// DefaultLoadCutoff is the load at which a trial stops. Beyond it
	// implementations are not meaningfully comparable.
	DefaultLoadCutoff = 0.1
)

type options struct {
	numBits      uint64
	trials       int
	sampleBudget uint64
	loadCutoff   float64
	parallelism  int
	logger       *slog.Logger
}

// Option configures a measurement.
type Option func(*options)

// WithNumBits sets the bit capacity of every filter in the measurement.
func WithNumBits(numBits uint64) Option {
	return func(o *options) {
		o.numBits = numBits
	}
}

// WithTrials sets the number of independent trials. At most MaxTrials.
func WithTrials(trials int) Option {
	return func(o *options) {
		o.trials = trials
	}
}

// WithSampleBudget sets how many non-members each sampling run may test.
//
// Smaller budgets make low false positive rates read as zero; they are
// mostly useful in tests.
func WithSampleBudget(budget uint64) Option {
	return func(o *options) {
		o.sampleBudget = budget
	}
}

// WithLoadCutoff sets the load at which trials stop.
func WithLoadCutoff(cutoff float64) Option {
	return func(o *options) {
		o.loadCutoff = cutoff
	}
}

// WithParallelism bounds the number of concurrently running units of work.
// Values <= 0 mean GOMAXPROCS. Results do not depend on this setting.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger sets the logger for progress records. If nil is passed, logs
// are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{
		numBits:      DefaultNumBits,
		trials:       DefaultTrials,
		sampleBudget: DefaultSampleBudget,
		loadCutoff:   DefaultLoadCutoff,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.parallelism <= 0 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if o.numBits == 0 {
		return o, fmt.Errorf("%w: numBits cannot be zero", ErrInvalidCapacity)
	}
	if o.trials <= 0 || o.trials > MaxTrials {
		return o, fmt.Errorf("%w: %d trials, want [1, %d]", ErrTrialRange, o.trials, MaxTrials)
	}
	if o.sampleBudget == 0 {
		return o, fmt.Errorf("fpbench: sample budget cannot be zero")
	}
	if o.loadCutoff <= 0 {
		return o, fmt.Errorf("fpbench: load cutoff must be positive, got %g", o.loadCutoff)
	}
	return o, nil
}

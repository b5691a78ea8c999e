package fpbench

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// bracket is a range of item counts [lo, hi) measured by one unit of work
// per trial. Successive brackets double the load.
type bracket struct {
	index int
	lo    uint64
	hi    uint64
}

// brackets returns every bracket whose first item count is below the load
// cutoff.
func brackets(numBits uint64, cutoff float64) []bracket {
	var out []bracket
	for b := range 63 {
		lo := uint64(1) << b
		if float64(lo)/float64(numBits) >= cutoff {
			break
		}
		out = append(out, bracket{index: b, lo: lo, hi: lo << 1})
	}
	return out
}

// unitResult is the outcome of one (bracket, trial) unit of work.
type unitResult struct {
	obs      []Observation
	rebuilds int
	err      error
}

// Measure runs the false positive measurement of impl and returns its
// aggregated curve.
//
// Every (bracket, trial) pair runs as an independent unit of work with its
// own filter and its own key ranges. Each trial's observations are put back
// together in bracket order, so the result does not depend on scheduling or
// on the configured parallelism.
//
// A unit that fails (the filter cannot be constructed, or a key stream runs
// dry) does not stop the others. Trials with a failed unit are left out of
// the curve and the failures are returned joined together, alongside the
// curve of the remaining trials.
func Measure(impl Implementation[uint64], opts ...Option) (Curve, error) {
	o, err := newOptions(opts)
	if err != nil {
		return Curve{}, err
	}
	if impl.New == nil {
		return Curve{}, fmt.Errorf("fpbench: implementation %q has no constructor", impl.Name)
	}

	log := o.logger.With(slog.String("filter", impl.Name), slog.Uint64("bits", o.numBits))
	brs := brackets(o.numBits, o.loadCutoff)
	log.Info("measuring", slog.Int("trials", o.trials), slog.Int("brackets", len(brs)))
	start := time.Now()

	results := make([][]unitResult, o.trials)
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for t := range o.trials {
		results[t] = make([]unitResult, len(brs))
		for i, br := range brs {
			g.Go(func() error {
				unitStart := time.Now()
				res := runUnit(impl, o, br, t)
				results[t][i] = res
				log.Debug("unit done",
					slog.Int("bracket", br.index),
					slog.Int("trial", t),
					slog.Int("checkpoints", len(res.obs)),
					slog.Int("rebuilds", res.rebuilds),
					slog.Duration("elapsed", time.Since(unitStart)),
				)
				// Failures stay in results so that one unit cannot cut the
				// others short.
				return nil
			})
		}
	}
	_ = g.Wait()

	var (
		trials [][]Observation
		errs   []error
	)
	for t, units := range results {
		var obs []Observation
		failed := false
		for i, res := range units {
			if res.err != nil {
				failed = true
				log.Warn("unit failed", slog.Int("bracket", brs[i].index), slog.Int("trial", t), slog.Any("error", res.err))
				errs = append(errs, fmt.Errorf("trial %d, bracket %d: %w", t, brs[i].index, res.err))
				continue
			}
			obs = append(obs, res.obs...)
		}
		if !failed {
			trials = append(trials, obs)
		}
	}

	curve := Curve{
		Name:    impl.Name,
		NumBits: o.numBits,
		Trials:  len(trials),
		Rows:    Aggregate(trials),
	}
	log.Info("measured",
		slog.Int("rows", len(curve.Rows)),
		slog.Int("failed", len(errs)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return curve, errors.Join(errs...)
}

// runUnit walks the checkpoint schedule across one bracket for one trial.
//
// At every checkpoint a fresh filter sized for the new item count is built.
// If it reports the same number of hashes as the live filter, the live
// filter is extended with the newly due members only. Otherwise the live
// filter is discarded and the fresh one is filled from scratch, since most
// implementations fix their hash count at construction.
//
// The non-member keys for checkpoint j of the schedule are the j-th block of
// sampleBudget keys in the trial's non-member range, so no two checkpoints
// of a trial share a non-member, whichever bracket they fall in.
func runUnit(impl Implementation[uint64], o options, br bracket, trial int) unitResult {
	var res unitResult
	members, nonMembers, err := Partition(trial)
	if err != nil {
		res.err = err
		return res
	}

	var (
		live Filter[uint64]
		prev uint64
		j    uint64
	)
	for cp := range Schedule() {
		idx := j
		j++
		if cp < br.lo {
			continue
		}
		load := float64(cp) / float64(o.numBits)
		if cp >= br.hi || load >= o.loadCutoff {
			break
		}

		fresh, err := impl.New(o.numBits, cp)
		if err != nil {
			res.err = fmt.Errorf("new filter for %d items: %w", cp, err)
			return res
		}
		lo := prev
		if live == nil || fresh.NumHashes() != live.NumHashes() {
			if live != nil {
				res.rebuilds++
			}
			live = fresh
			lo = 0
		}
		items, err := members.Slice(lo, cp)
		if err != nil {
			res.err = fmt.Errorf("members for %d items: %w", cp, err)
			return res
		}
		live.Extend(items)
		prev = cp

		probe, err := nonMembers.Block(idx, o.sampleBudget)
		if err != nil {
			res.err = fmt.Errorf("non-members for checkpoint %d: %w", idx, err)
			return res
		}
		stats := Sample(live, probe)
		res.obs = append(res.obs, Observation{
			Items:     cp,
			Load:      load,
			Rate:      stats.Rate(),
			NumHashes: live.NumHashes(),
		})
	}
	return res
}

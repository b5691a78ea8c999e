// Package fpbench measures the false positive rate of bloom filters as a
// function of load.
//
// A bloom filter answers membership queries with one-sided error: items that
// were added are always reported present, but items that were not added are
// sometimes reported present too. How often that happens depends on the
// filter's size, its number of hash probes, its bit layout and the quality
// of its hashing. fpbench produces comparable accuracy curves for any filter
// that implements [Filter], so that different implementations can be put
// side by side.
//
// # Load
//
// Load is the number of items inserted divided by the number of allocated
// bits. Curves are produced for loads below a cutoff (0.1 by default, or ten
// bits per item); beyond that filters are too full to be worth comparing.
//
// # Measurement
//
// [Measure] walks a fixed schedule of item counts ([Checkpoints]) that is
// dense at low counts and roughly log-uniform beyond. At every checkpoint it
// inserts members into the filter and estimates the false positive rate by
// querying keys that were never inserted ([Sample]). Sampling stops early
// once the estimate is good enough:
//
//   - after 100 false positives
//   - after 10 false positives and more than 1,000,000 queries
//   - after 1 false positive and more than 100,000,000 queries
//
// or when the sample budget runs out. Each measurement runs several
// independent trials, each on its own slice of the 64-bit key space
// ([Partition]), and reduces them to mean, min and max per checkpoint
// ([Aggregate]).
//
// Keys are consecutive integers from each trial's lane, so the same
// configuration always measures the same keys. The numbers are independent
// of how many goroutines run the work.
//
// # Reference filter
//
// [Reference] is a filter with no hash function: every insert and every
// query draws fresh random bit positions. It attains the lowest false
// positive rate possible for k probes into m bits and is the baseline
// implementations are normalised against.
//
// # Output
//
// [WriteTable] writes one CSV line per row (load, mean, min, max) with no
// header. The command in cmd/analysis writes one such file per filter.
package fpbench

package benchmarks

import (
	"math/rand/v2"
	"testing"

	"github.com/jcalabro/fpbench"
	"github.com/jcalabro/fpbench/filters"
)

const (
	benchBits  = 1 << 24
	benchItems = benchBits / 10
)

// Pre-generate keys to avoid measuring key generation
var (
	members    []uint64
	nonMembers []uint64
)

func init() {
	rng := rand.New(rand.NewPCG(1, 2))
	members = make([]uint64, benchItems)
	nonMembers = make([]uint64, benchItems)
	for i := range benchItems {
		members[i] = rng.Uint64() >> 1
		nonMembers[i] = rng.Uint64() | 1<<63
	}
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

// implementations returns every implementation plus blobloom fed raw keys,
// which isolates its probing cost from hashing.
func implementations() []fpbench.Implementation[uint64] {
	return append(filters.All(), filters.BlobloomImplementation("blobloom - identity", filters.Identity))
}

func filled(b *testing.B, impl fpbench.Implementation[uint64]) fpbench.Filter[uint64] {
	b.Helper()
	f, err := impl.New(benchBits, benchItems)
	if err != nil {
		b.Fatalf("%s: %v", impl.Name, err)
	}
	f.Extend(seqOf(members))
	return f
}

// ============================================================================
// Sequential Extend Benchmarks
// ============================================================================

func BenchmarkExtend(b *testing.B) {
	for _, impl := range implementations() {
		b.Run(impl.Name, func(b *testing.B) {
			f, err := impl.New(benchBits, benchItems)
			if err != nil {
				b.Fatalf("%s: %v", impl.Name, err)
			}
			b.ResetTimer()
			for i := range b.N {
				f.Extend(seqOf(members[i%benchItems : i%benchItems+1]))
			}
		})
	}
}

// ============================================================================
// Sequential Check Benchmarks
// ============================================================================

func BenchmarkCheckMember(b *testing.B) {
	for _, impl := range implementations() {
		b.Run(impl.Name, func(b *testing.B) {
			f := filled(b, impl)
			b.ResetTimer()
			for i := range b.N {
				f.Check(members[i%benchItems])
			}
		})
	}
}

func BenchmarkCheckNonMember(b *testing.B) {
	for _, impl := range implementations() {
		b.Run(impl.Name, func(b *testing.B) {
			f := filled(b, impl)
			b.ResetTimer()
			for i := range b.N {
				f.Check(nonMembers[i%benchItems])
			}
		})
	}
}

// ============================================================================
// Parallel Benchmarks (concurrent-safe filters only)
// ============================================================================

func BenchmarkCheckParallel_GloomAtomic(b *testing.B) {
	f := filled(b, filters.AtomicBlockedImplementation())
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Check(nonMembers[i%benchItems])
			i++
		}
	})
}

func BenchmarkCheckParallel_AtomicBloom(b *testing.B) {
	f := filled(b, filters.AtomicBloomImplementation())
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Check(nonMembers[i%benchItems])
			i++
		}
	})
}

func BenchmarkAddParallel_GloomAtomic(b *testing.B) {
	f, err := filters.NewAtomicBlocked(benchBits, benchItems)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(members[i%benchItems])
			i++
		}
	})
}

// ============================================================================
// Sampling Benchmarks
// ============================================================================

// BenchmarkSample reports the cost of one sampling run at a load of 0.1,
// where every implementation stops after 100 false positives.
func BenchmarkSample(b *testing.B) {
	for _, impl := range implementations() {
		b.Run(impl.Name, func(b *testing.B) {
			f := filled(b, impl)
			b.ResetTimer()
			var tested uint64
			for range b.N {
				stats := fpbench.Sample[uint64](f, seqOf(nonMembers))
				tested += stats.Tested
			}
			b.ReportMetric(float64(tested)/float64(b.N), "tests/op")
		})
	}
}

func BenchmarkMeasure(b *testing.B) {
	for _, impl := range filters.All() {
		b.Run(impl.Name, func(b *testing.B) {
			for range b.N {
				_, err := fpbench.Measure(impl,
					fpbench.WithNumBits(1<<12),
					fpbench.WithTrials(2),
					fpbench.WithSampleBudget(1<<12),
				)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

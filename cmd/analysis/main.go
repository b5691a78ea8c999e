// Command analysis measures the false positive curve of every configured
// bloom filter and writes one CSV table per filter.
//
// Each table has one line per checkpoint with the columns load, mean, min
// and max false positive rate, and is named after the filter. See Config for
// the environment variables it reads.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/jcalabro/fpbench"
	"github.com/jcalabro/fpbench/filters"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		return 1
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))

	impls, err := filters.Lookup(cfg.Filters)
	if err != nil {
		logger.Error("invalid filter selection", slog.Any("error", err), slog.Any("known", filters.Names()))
		return 1
	}

	logger.Info("measuring false positive rates",
		slog.Int("filters", len(impls)),
		slog.Uint64("bits", cfg.Bits),
		slog.Int("trials", cfg.Trials),
		slog.String("out", cfg.OutDir),
	)
	start := time.Now()
	status := 0
	for _, impl := range impls {
		implStart := time.Now()
		curve, err := fpbench.Measure(impl, cfg.options(logger)...)
		if err != nil {
			// Surviving trials are still written.
			logger.Error("measurement incomplete",
				slog.String("filter", impl.Name),
				slog.Int("trials", curve.Trials),
				slog.Any("error", err),
			)
		}
		if curve.Trials == 0 {
			status = 1
			continue
		}

		path, err := curve.WriteCSV(cfg.OutDir)
		if err != nil {
			logger.Error("failed to write table", slog.String("filter", impl.Name), slog.Any("error", err))
			return 1
		}
		logger.Info("done",
			slog.String("filter", impl.Name),
			slog.String("path", path),
			slog.Int("rows", len(curve.Rows)),
			slog.Duration("elapsed", time.Since(implStart).Round(time.Second)),
		)
	}

	logger.Info("all filters done", slog.Duration("elapsed", time.Since(start).Round(time.Second)))
	return status
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jcalabro/fpbench"
)

// envPrefix is prepended to every variable name in Config.
const envPrefix = "FPBENCH_"

// Config is read from FPBENCH_* environment variables, optionally set in a
// .env file in the working directory.
type Config struct {
	Bits         uint64     `env:"BITS" envDefault:"4096"`
	Trials       int        `env:"TRIALS" envDefault:"8"`
	SampleBudget uint64     `env:"SAMPLE_BUDGET" envDefault:"134217728"`
	LoadCutoff   float64    `env:"LOAD_CUTOFF" envDefault:"0.1"`
	Parallelism  int        `env:"PARALLELISM" envDefault:"0"`
	OutDir       string     `env:"OUT_DIR" envDefault:"Acc"`
	Filters      []string   `env:"FILTERS" envSeparator:","`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// loadConfig loads .env if present and parses the environment.
func loadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// options converts the configuration into measurement options.
func (c Config) options(logger *slog.Logger) []fpbench.Option {
	return []fpbench.Option{
		fpbench.WithNumBits(c.Bits),
		fpbench.WithTrials(c.Trials),
		fpbench.WithSampleBudget(c.SampleBudget),
		fpbench.WithLoadCutoff(c.LoadCutoff),
		fpbench.WithParallelism(c.Parallelism),
		fpbench.WithLogger(logger),
	}
}

package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcalabro/fpbench"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{
		Bits:         fpbench.DefaultNumBits,
		Trials:       fpbench.DefaultTrials,
		SampleBudget: fpbench.DefaultSampleBudget,
		LoadCutoff:   fpbench.DefaultLoadCutoff,
		OutDir:       "Acc",
		LogLevel:     slog.LevelInfo,
	}, cfg)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FPBENCH_BITS", "65536")
	t.Setenv("FPBENCH_TRIALS", "16")
	t.Setenv("FPBENCH_SAMPLE_BUDGET", "1024")
	t.Setenv("FPBENCH_LOAD_CUTOFF", "0.05")
	t.Setenv("FPBENCH_PARALLELISM", "3")
	t.Setenv("FPBENCH_OUT_DIR", "out")
	t.Setenv("FPBENCH_FILTERS", "gloom,bloom")
	t.Setenv("FPBENCH_LOG_LEVEL", "debug")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, uint64(65536), cfg.Bits)
	require.Equal(t, 16, cfg.Trials)
	require.Equal(t, uint64(1024), cfg.SampleBudget)
	require.InDelta(t, 0.05, cfg.LoadCutoff, 1e-12)
	require.Equal(t, 3, cfg.Parallelism)
	require.Equal(t, "out", cfg.OutDir)
	require.Equal(t, []string{"gloom", "bloom"}, cfg.Filters)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)

	require.Len(t, cfg.options(slog.Default()), 6)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FPBENCH_TRIALS", "many")

	_, err := loadConfig()
	require.Error(t, err)
}

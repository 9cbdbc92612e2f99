package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateLayersFlagsOverEnv(t *testing.T) {
	t.Setenv("GAMBIT_GENERATIONS", "9")
	t.Setenv("GAMBIT_THRESHOLD", "12")

	out, err := execute(t, "validate", "--agent", "learning", "--lr", "0.2", "--generations", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "agent_type: adaptive")
	assert.Contains(t, out, "learning_rate: 0.2")
	assert.Contains(t, out, "num_generations: 7")
	assert.Contains(t, out, "agent_initial_threshold: 12")
}

func TestValidateReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_generations: 4\nagent_type: adaptive\nlearning_rate: 0.5\n"), 0o644))

	out, err := execute(t, "validate", "--config", path, "--generations", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "num_generations: 5")
	assert.Contains(t, out, "agent_type: adaptive")
	assert.Contains(t, out, "learning_rate: 0.5")
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"probability above one", []string{"--reward_prob", "1.5"}, "reward_probability"},
		{"zero threshold", []string{"--threshold", "0"}, "agent_initial_threshold"},
		{"unknown agent", []string{"--agent", "greedy"}, "agent_type"},
		{"zero max steps", []string{"--max_steps", "0"}, "max_steps_per_generation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"validate"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidConfig), "got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestRunWritesReports(t *testing.T) {
	base := t.TempDir()
	out, err := execute(t, "run",
		"--name", "unit test",
		"--generations", "5",
		"--threshold", "2",
		"--reward_prob", "0.5",
		"--max_steps", "100",
		"--seed", "7",
		"--log_level", "error",
		"--output_base", base,
		"--detailed_log",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "5 / 5")

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "unit_test_fixed_Thresh2_"), entries[0].Name())

	runDir := filepath.Join(base, entries[0].Name())
	for _, name := range []string{
		report.CSVFile,
		report.JSONFile,
		report.WorkbookFile,
		report.SQLiteFile,
		report.MetricsFile,
		report.LogFile,
		configFile,
	} {
		_, err := os.Stat(filepath.Join(runDir, name))
		assert.NoError(t, err, name)
	}

	saved, err := os.ReadFile(filepath.Join(runDir, configFile))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "seed: 7")
}

func TestRunIsReproducible(t *testing.T) {
	csvFor := func(base string) []byte {
		_, err := execute(t, "run",
			"--generations", "20",
			"--threshold", "3",
			"--reward_prob", "0.4",
			"--seed", "1234",
			"--log_level", "error",
			"--output_base", base,
		)
		require.NoError(t, err)
		entries, err := os.ReadDir(base)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		data, err := os.ReadFile(filepath.Join(base, entries[0].Name(), report.CSVFile))
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, csvFor(t.TempDir()), csvFor(t.TempDir()))
}

func TestRunNeverSharesADirectory(t *testing.T) {
	base := t.TempDir()
	args := []string{"run",
		"--name", "same",
		"--generations", "3",
		"--seed", "5",
		"--log_level", "error",
		"--output_base", base,
	}
	_, err := execute(t, args...)
	require.NoError(t, err)
	_, err = execute(t, args...)
	require.NoError(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(base, e.Name(), report.CSVFile))
		require.NoError(t, err)
		assert.Equal(t, 4, strings.Count(string(data), "\n"), e.Name())
	}
}

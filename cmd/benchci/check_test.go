package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benchci/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd_Passes(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 600_000_000, 500_000_000)
	writePair(t, results, "pop_max", 400_000_000, 350_000_000)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)
	require.NoError(t, err)
	assert.Contains(t, out, "Improvement: 15.0% (base=1e+09, new=8.5e+08)")
	assert.Contains(t, out, "Speedup requirement met")
}

func TestCheckCmd_ExactlyTenPercentPasses(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000_000_000, 900_000_000)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)
	require.NoError(t, err)
	assert.Contains(t, out, "Improvement: 10.0%")
}

func TestCheckCmd_BelowThresholdFails(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000_000_000, 950_000_000)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)
	require.Error(t, err)
	assert.ErrorIs(t, err, benchmark.ErrThresholdNotMet)
	assert.Contains(t, out, "Improvement: 5.0%")
	assert.NotContains(t, out, "Speedup requirement met")
}

func TestCheckCmd_RegressionFails(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 100, 150)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)
	assert.ErrorIs(t, err, benchmark.ErrThresholdNotMet)
	assert.Contains(t, out, "Improvement: -50.0%")
}

func TestCheckCmd_MissingBaselineFails(t *testing.T) {
	results := t.TempDir()
	writeEstimates(t, results, benchGroup+"/pop_min/new/estimates.json", 1, 1)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)

	var missing *benchmark.MissingBaselineError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "base", missing.Baseline)
	assert.NotContains(t, out, "Improvement:")
}

func TestCheckCmd_MissingResultsDir(t *testing.T) {
	_, err := executeCommand(rootCmd, "check", "--results-dir", filepath.Join(t.TempDir(), "missing"))

	var missing *benchmark.MissingBaselineError
	assert.ErrorAs(t, err, &missing)
}

func TestCheckCmd_MalformedFails(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000, 500)
	bad := filepath.Join(results, benchGroup, "pop_max", "new", "estimates.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(bad), 0755))
	require.NoError(t, os.WriteFile(bad, []byte(`{"mean":`), 0644))

	_, err := executeCommand(rootCmd, "check", "--results-dir", results)

	var pe *benchmark.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.Path)
}

func TestCheckCmd_IgnoresOtherGroups(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000, 800)
	writeEstimates(t, results, "other/pop_min/new/estimates.json", 1e12, 1)
	writeEstimates(t, results, "other/pop_min/base/estimates.json", 1, 1)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results)
	require.NoError(t, err)
	assert.Contains(t, out, "Improvement: 20.0%")
}

func TestCheckCmd_JSON(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000, 800)

	out, err := executeCommand(rootCmd, "check", "--results-dir", results, "--json")
	require.NoError(t, err)

	var report struct {
		Group       string  `json:"group"`
		Improvement float64 `json:"improvement"`
		Threshold   float64 `json:"threshold"`
		Passed      bool    `json:"passed"`
		Base        struct {
			MeanNs float64 `json:"mean_ns"`
			Files  int     `json:"files"`
		} `json:"base"`
	}
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&report))
	assert.Equal(t, benchGroup, report.Group)
	assert.InDelta(t, 0.2, report.Improvement, 1e-9)
	assert.Equal(t, 0.10, report.Threshold)
	assert.True(t, report.Passed)
	assert.Equal(t, 1_000.0, report.Base.MeanNs)
	assert.Equal(t, 1, report.Base.Files)
}

func TestCheckCmd_MetricsAndRecordOnFailure(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000, 990)
	metrics := filepath.Join(t.TempDir(), "check.prom")

	store := &MockStore{}
	useMockStore(t, store)

	_, err := executeCommand(rootCmd, "check", "--results-dir", results, "--metrics-file", metrics, "--record")
	assert.ErrorIs(t, err, benchmark.ErrThresholdNotMet)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `benchci_check_passed{group="pop_loop_vs_baseline"} 0`)
	assert.Contains(t, string(data), `benchci_baseline_aggregate_nanoseconds{baseline="base",group="pop_loop_vs_baseline"} 1000`)

	require.Len(t, store.Checks, 1)
	assert.False(t, store.Checks[0].Passed())
	assert.True(t, store.Closed)
}

func TestCheckCmd_RecordFails(t *testing.T) {
	results := t.TempDir()
	writePair(t, results, "pop_min", 1_000, 500)
	useMockStore(t, &MockStore{FailOnSave: true})

	_, err := executeCommand(rootCmd, "check", "--results-dir", results, "--record")
	require.Error(t, err)
	assert.NotErrorIs(t, err, benchmark.ErrThresholdNotMet)
}

func TestCheckCmd_SymlinkedResultsDir(t *testing.T) {
	target := t.TempDir()
	writePair(t, target, "pop_min", 1_000, 800)
	link := filepath.Join(t.TempDir(), "criterion")
	require.NoError(t, os.Symlink(target, link))

	out, err := executeCommand(rootCmd, "check", "--results-dir", link)
	require.NoError(t, err)
	assert.Contains(t, out, "Improvement: 20.0%")
}

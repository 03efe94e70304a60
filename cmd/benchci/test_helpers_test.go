package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benchci/internal/benchmark"
	"benchci/internal/history"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// MockStore is an in-memory history.Store.
type MockStore struct {
	Checks    []benchmark.Comparison
	Summaries [][]benchmark.Result
	Closed    bool

	CheckRecords   []history.CheckRecord
	SummaryRecords []history.SummaryRecord

	FailOnSave  bool
	FailOnQuery bool

	lastGroup string
	lastName  string
	lastLimit int
}

func (m *MockStore) Close() error {
	m.Closed = true
	return nil
}

func (m *MockStore) SaveCheck(ctx context.Context, c benchmark.Comparison) error {
	if m.FailOnSave {
		return fmt.Errorf("save failed")
	}
	m.Checks = append(m.Checks, c)
	return nil
}

func (m *MockStore) SaveSummary(ctx context.Context, results []benchmark.Result) error {
	if m.FailOnSave {
		return fmt.Errorf("save failed")
	}
	m.Summaries = append(m.Summaries, results)
	return nil
}

func (m *MockStore) QueryChecks(ctx context.Context, group string, limit int) ([]history.CheckRecord, error) {
	m.lastGroup, m.lastLimit = group, limit
	if m.FailOnQuery {
		return nil, fmt.Errorf("query failed")
	}
	return m.CheckRecords, nil
}

func (m *MockStore) QuerySummaries(ctx context.Context, name string, limit int) ([]history.SummaryRecord, error) {
	m.lastName, m.lastLimit = name, limit
	if m.FailOnQuery {
		return nil, fmt.Errorf("query failed")
	}
	return m.SummaryRecords, nil
}

// useMockStore swaps newStoreFunc for the duration of the test.
func useMockStore(t *testing.T, store *MockStore) {
	t.Helper()
	old := newStoreFunc
	newStoreFunc = func(cfg history.StoreConfig) (history.Store, error) {
		return store, nil
	}
	t.Cleanup(func() { newStoreFunc = old })
}

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				// This is an expected exit, don't re-panic
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeEstimates writes a minimal Criterion estimates.json at root/rel.
func writeEstimates(t *testing.T, root, rel string, meanNs, stdDevNs float64) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	body := fmt.Sprintf(`{"mean":{"point_estimate":%g},"std_dev":{"point_estimate":%g}}`, meanNs, stdDevNs)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

// writePair writes one base and one new estimate for a function of benchGroup.
func writePair(t *testing.T, root, fn string, baseNs, newNs float64) {
	t.Helper()
	writeEstimates(t, root, benchGroup+"/"+fn+"/base/estimates.json", baseNs, 1)
	writeEstimates(t, root, benchGroup+"/"+fn+"/new/estimates.json", newNs, 1)
}

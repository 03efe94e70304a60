package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"benchci/internal/benchmark"
	"benchci/internal/config"
	"benchci/internal/telemetry"

	"github.com/spf13/cobra"
)

// benchGroup is the Criterion group whose baselines are compared. It is fixed
// per build; override with -ldflags "-X main.benchGroup=<group>".
var benchGroup = "pop_loop_vs_baseline"

// speedupThreshold is the minimum fractional improvement of new over base.
const speedupThreshold = 0.10

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail unless the new baseline is at least 10% faster than base",
	Long: `Sums mean.point_estimate over every <group>/**/base/estimates.json and
<group>/**/new/estimates.json under the results directory, prints the
improvement of new over base and exits non-zero when it is below 10%.

Save the two baselines with:
  cargo bench -- --save-baseline base   # before the change
  cargo bench                           # after, written to new/`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print the comparison as JSON")
	checkCmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	checkCmd.Flags().Bool("record", false, "Save the outcome to the history store")
}

type checkReport struct {
	benchmark.Comparison
	Passed bool `json:"passed"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	asJSON, _ := cmd.Flags().GetBool("json")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	record, _ := cmd.Flags().GetBool("record")

	c, err := benchmark.CompareBaselines(cfg.ResultsDir, benchGroup, speedupThreshold)
	if err != nil {
		return err
	}
	slog.Debug("Compared baselines", "group", c.Group,
		"base_ns", c.Base.MeanNs, "base_files", c.Base.Files,
		"new_ns", c.New.MeanNs, "new_files", c.New.Files)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checkReport{Comparison: c, Passed: c.Passed()}); err != nil {
			return fmt.Errorf("failed to encode comparison: %w", err)
		}
	} else {
		fmt.Fprintln(out, c.String())
	}

	if metricsFile != "" {
		m := telemetry.NewMetrics()
		m.ObserveComparison(c)
		if err := m.WriteTextfile(metricsFile); err != nil {
			return err
		}
	}

	if record {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveCheck(cmd.Context(), c); err != nil {
			return err
		}
	}

	if !c.Passed() {
		return fmt.Errorf("%w: %s improved %.1f%%, need at least %.0f%%",
			benchmark.ErrThresholdNotMet, c.Group, c.Improvement*100, c.Threshold*100)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, newStyles(stderr).success.Render(
		fmt.Sprintf("Speedup requirement met (>= %.0f%%)", c.Threshold*100)))
	return nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"benchci/internal/benchmark"
	"benchci/internal/config"
	"benchci/internal/telemetry"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Write a Markdown table of the latest benchmark estimates",
	Long: `Collects every new/estimates.json under the results directory and writes
a Markdown table of mean and standard deviation per benchmark.

The table goes to --output, else $GITHUB_STEP_SUMMARY, else bench-summary.md.
Unreadable or malformed result files are skipped; a missing results
directory produces a "No benchmark results found." report.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("output", "o", "", "Summary file (default $GITHUB_STEP_SUMMARY or bench-summary.md)")
	summaryCmd.Flags().Bool("preview", false, "Also render the summary in the terminal")
	summaryCmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	summaryCmd.Flags().Bool("record", false, "Save the estimates to the history store")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.SummaryPath
	}
	preview, _ := cmd.Flags().GetBool("preview")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	record, _ := cmd.Flags().GetBool("record")

	results := benchmark.Collect(cfg.ResultsDir)
	report := benchmark.RenderMarkdown(results)

	if err := os.WriteFile(output, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	slog.Info("Wrote benchmark summary", "path", output, "benchmarks", len(results))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d benchmark(s) to %s\n", len(results), output)

	if preview {
		renderPreview(cmd.OutOrStdout(), report)
	}

	if metricsFile != "" {
		m := telemetry.NewMetrics()
		m.ObserveResults(results)
		if err := m.WriteTextfile(metricsFile); err != nil {
			return err
		}
	}

	if record && len(results) > 0 {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveSummary(cmd.Context(), results); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, newStyles(out).muted.Render("Recorded summary in history"))
	}

	return nil
}

// renderPreview prints markdown styled for the terminal, falling back to
// the raw text when rendering fails.
func renderPreview(w io.Writer, markdown string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, err := renderer.Render(markdown); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, markdown)
}

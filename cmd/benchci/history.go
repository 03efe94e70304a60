package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"benchci/internal/benchmark"
	"benchci/internal/history"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded checks and summaries",
	Long: `Lists outcomes saved with 'benchci check --record' (default) or, with
--summaries, rows saved with 'benchci summary --record'. Newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of rows to show")
	historyCmd.Flags().String("group", "", "Only show checks of this group (default: all)")
	historyCmd.Flags().String("benchmark", "", "Only show summaries of this benchmark (with --summaries)")
	historyCmd.Flags().Bool("summaries", false, "List recorded summary rows instead of checks")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 1 {
		return fmt.Errorf("--limit must be >= 1 (got %d)", limit)
	}
	group, _ := cmd.Flags().GetString("group")
	name, _ := cmd.Flags().GetString("benchmark")
	summaries, _ := cmd.Flags().GetBool("summaries")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if summaries {
		rows, err := store.QuerySummaries(cmd.Context(), name, limit)
		if err != nil {
			return fmt.Errorf("failed to query summaries: %w", err)
		}
		if asJSON {
			return writeJSON(out, rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(out, "No recorded summaries.")
			return nil
		}
		return printSummaries(out, rows)
	}

	checks, err := store.QueryChecks(cmd.Context(), group, limit)
	if err != nil {
		return fmt.Errorf("failed to query checks: %w", err)
	}
	if asJSON {
		return writeJSON(out, checks)
	}
	if len(checks) == 0 {
		fmt.Fprintln(out, "No recorded checks.")
		return nil
	}
	return printChecks(out, checks)
}

func printChecks(out io.Writer, checks []history.CheckRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tGROUP\tBASE\tNEW\tIMPROVEMENT\tSTATUS")
	for _, c := range checks {
		status := "FAIL"
		if c.Passed {
			status = "PASS"
		}
		fmt.Fprintf(w, "%s\t%s\t%.3g\t%.3g\t%.1f%%\t%s\n",
			c.CreatedAt.Local().Format("2006-01-02 15:04:05"), c.Group, c.BaseNs, c.NewNs, c.Improvement*100, status)
	}
	return w.Flush()
}

func printSummaries(out io.Writer, rows []history.SummaryRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tBENCHMARK\tMEAN\tSTD DEV")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Benchmark,
			benchmark.FormatDuration(r.MeanSeconds), benchmark.FormatDuration(r.StdDevSeconds))
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return nil
}

package benchmark

import (
	"fmt"
	"strings"
)

// NoResultsMessage is written in place of the table when nothing was found.
const NoResultsMessage = "No benchmark results found.\n"

// FormatDuration renders seconds in the largest of s, ms and µs whose
// magnitude is at least one, falling back to µs.
func FormatDuration(seconds float64) string {
	if seconds >= 1.0 {
		return fmt.Sprintf("%.2f s", seconds)
	}
	ms := seconds * 1_000.0
	if ms >= 1.0 {
		return fmt.Sprintf("%.2f ms", ms)
	}
	return fmt.Sprintf("%.2f µs", ms*1_000.0)
}

// RenderMarkdown renders results as a Markdown summary table, or
// NoResultsMessage when there are none. Results are rendered in the
// order given.
func RenderMarkdown(results []Result) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	var sb strings.Builder
	sb.WriteString("Benchmark summary\n\n")
	sb.WriteString("| Benchmark | Mean | Std Dev |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", r.Name, FormatDuration(r.MeanSeconds), FormatDuration(r.StdDevSeconds))
	}
	return sb.String()
}

// FormatComparison renders the one-line improvement report.
func FormatComparison(c Comparison) string {
	return fmt.Sprintf("Improvement: %.1f%% (base=%.3g, new=%.3g)", c.Improvement*100, c.Base.MeanNs, c.New.MeanNs)
}

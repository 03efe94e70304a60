package benchmark

import (
	"log/slog"
	"path/filepath"
	"sort"
)

// Collect gathers the latest-run estimates of every benchmark under root.
//
// The summary is informational, so it is best effort: a missing root yields
// no results and unreadable or malformed files are skipped.
func Collect(root string) []Result {
	var results []Result

	for path := range Walk(root, LatestRuns) {
		est, err := LoadEstimates(path)
		if err != nil {
			slog.Debug("Skipping estimates file", "path", path, "error", err)
			continue
		}
		if est.StdDev == nil {
			slog.Debug("Skipping estimates file", "path", path, "error", ErrMissingField)
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}

		results = append(results, Result{
			Name:          BenchmarkName(rel),
			MeanSeconds:   est.Mean.PointEstimate / nanosPerSecond,
			StdDevSeconds: est.StdDev.PointEstimate / nanosPerSecond,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	slog.Debug("Collected benchmark estimates", "root", root, "count", len(results))
	return results
}

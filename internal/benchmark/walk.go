package benchmark

import (
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"
)

// Matcher decides whether a file belongs to a walk, given its path relative
// to the results root split into slash-separated segments.
type Matcher func(rel []string) bool

// Walk lazily yields every regular file under root accepted by match.
// Unreadable directories are skipped; a missing root yields nothing.
// A symlinked root is followed, but yielded paths stay under root as given.
// Paths are yielded in lexical order and the sequence is single-use.
func Walk(root string, match Matcher) iter.Seq[string] {
	return func(yield func(string) bool) {
		// WalkDir does not follow a symlinked root.
		walkRoot := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = resolved
		}

		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Debug("Skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() && path != walkRoot {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(walkRoot, path)
			if relErr != nil || !match(splitRel(rel)) {
				return nil
			}
			if !yield(filepath.Join(root, rel)) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// LatestRuns matches **/new/estimates.json, the layout Criterion uses for
// the most recent measurement of every benchmark.
func LatestRuns(rel []string) bool {
	n := len(rel)
	return n >= 2 && rel[n-1] == EstimatesFile && rel[n-2] == LatestBaseline
}

// InBaseline matches <group>/**/<baseline>/estimates.json. The ** may be
// empty, so the flat <group>/<baseline>/estimates.json layout matches too.
func InBaseline(group, baseline string) Matcher {
	prefix := splitRel(group)
	return func(rel []string) bool {
		n := len(rel)
		if n < len(prefix)+2 {
			return false
		}
		for i, seg := range prefix {
			if rel[i] != seg {
				return false
			}
		}
		return rel[n-2] == baseline && rel[n-1] == EstimatesFile
	}
}

// BenchmarkName derives the benchmark identifier from a path relative to
// the results root by dropping the baseline directory and file name.
func BenchmarkName(rel string) string {
	segs := splitRel(rel)
	if len(segs) < 2 {
		return ""
	}
	return strings.Join(segs[:len(segs)-2], "/")
}

func splitRel(rel string) []string {
	return strings.Split(filepath.ToSlash(rel), "/")
}

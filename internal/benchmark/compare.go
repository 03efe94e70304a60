package benchmark

import (
	"fmt"
	"log/slog"
)

// Baseline names Criterion uses for the before and after snapshots.
const (
	BaseBaseline = "base"
	NewBaseline  = LatestBaseline
)

// SumBaseline adds up mean.point_estimate over every
// <group>/**/<baseline>/estimates.json under root.
//
// Unlike Collect, any unreadable file is fatal: dropping one would skew the
// sum the speedup gate depends on.
func SumBaseline(root, group, baseline string) (Aggregate, error) {
	agg := Aggregate{Baseline: baseline}

	for path := range Walk(root, InBaseline(group, baseline)) {
		est, err := LoadEstimates(path)
		if err != nil {
			return Aggregate{}, err
		}
		agg.MeanNs += est.Mean.PointEstimate
		agg.Files++
		slog.Debug("Added estimate", "baseline", baseline, "path", path, "mean_ns", est.Mean.PointEstimate)
	}

	if agg.Files == 0 {
		return Aggregate{}, &MissingBaselineError{Group: group, Baseline: baseline}
	}

	return agg, nil
}

// CompareBaselines sums the base and new baselines of group and computes
// the fractional improvement of new over base.
func CompareBaselines(root, group string, threshold float64) (Comparison, error) {
	base, err := SumBaseline(root, group, BaseBaseline)
	if err != nil {
		return Comparison{}, err
	}

	latest, err := SumBaseline(root, group, NewBaseline)
	if err != nil {
		return Comparison{}, err
	}

	if base.MeanNs <= 0 {
		return Comparison{}, fmt.Errorf("%w: base mean is %g ns", ErrInvalidBaseline, base.MeanNs)
	}

	return Comparison{
		Group:       group,
		Base:        base,
		New:         latest,
		Improvement: (base.MeanNs - latest.MeanNs) / base.MeanNs,
		Threshold:   threshold,
	}, nil
}

func (c Comparison) String() string {
	return FormatComparison(c)
}

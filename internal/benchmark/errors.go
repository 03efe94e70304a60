package benchmark

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when an estimates file lacks a statistic or
	// its point estimate.
	ErrMissingField = errors.New("missing point estimate")

	// ErrInvalidBaseline is returned when the base aggregate is not positive.
	ErrInvalidBaseline = errors.New("invalid baseline")

	// ErrThresholdNotMet is returned by callers gating on Comparison.Passed.
	ErrThresholdNotMet = errors.New("speedup requirement not met")
)

// ParseError reports an estimates file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingBaselineError reports a baseline with no estimates files in a group.
type MissingBaselineError struct {
	Group    string
	Baseline string
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("no %q estimates found under %s; run the benchmarks with --save-baseline %s",
		e.Baseline, e.Group, e.Baseline)
}

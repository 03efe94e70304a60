package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
)

// rawEstimates mirrors Estimates with nullable point estimates so an
// absent or null value is not read as zero.
type rawEstimates struct {
	Mean   *rawEstimate `json:"mean"`
	StdDev *rawEstimate `json:"std_dev"`
}

type rawEstimate struct {
	PointEstimate *float64 `json:"point_estimate"`
}

// LoadEstimates reads and decodes a Criterion estimates.json file.
// Every failure, including a missing mean, is returned as *ParseError.
// std_dev may be absent; callers that render it check for nil. When
// present, both statistics must carry a point estimate.
func LoadEstimates(path string) (Estimates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Estimates{}, &ParseError{Path: path, Err: err}
	}

	var raw rawEstimates
	if err := json.Unmarshal(data, &raw); err != nil {
		return Estimates{}, &ParseError{Path: path, Err: err}
	}

	if raw.Mean == nil {
		return Estimates{}, &ParseError{Path: path, Err: fmt.Errorf("%w: mean", ErrMissingField)}
	}
	if raw.Mean.PointEstimate == nil {
		return Estimates{}, &ParseError{Path: path, Err: fmt.Errorf("%w: mean.point_estimate", ErrMissingField)}
	}

	est := Estimates{Mean: &Estimate{PointEstimate: *raw.Mean.PointEstimate}}
	if raw.StdDev != nil {
		if raw.StdDev.PointEstimate == nil {
			return Estimates{}, &ParseError{Path: path, Err: fmt.Errorf("%w: std_dev.point_estimate", ErrMissingField)}
		}
		est.StdDev = &Estimate{PointEstimate: *raw.StdDev.PointEstimate}
	}

	return est, nil
}

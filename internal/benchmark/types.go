package benchmark

// EstimatesFile is the file name Criterion writes for every benchmark run.
const EstimatesFile = "estimates.json"

// LatestBaseline is the directory Criterion uses for the most recent run.
const LatestBaseline = "new"

// nanosPerSecond converts Criterion point estimates (nanoseconds) to seconds.
const nanosPerSecond = 1_000_000_000.0

// Estimate is a single statistic from an estimates.json file.
type Estimate struct {
	PointEstimate float64 `json:"point_estimate"`
}

// Estimates is the subset of a Criterion estimates.json file we read.
// Fields are pointers so a missing statistic can be told apart from zero.
type Estimates struct {
	Mean   *Estimate `json:"mean"`
	StdDev *Estimate `json:"std_dev"`
}

// Result is one row of the summary table.
type Result struct {
	Name          string  `json:"name"`
	MeanSeconds   float64 `json:"mean_seconds"`
	StdDevSeconds float64 `json:"std_dev_seconds"`
}

// Aggregate is the summed mean of every estimates file of one baseline.
type Aggregate struct {
	Baseline string  `json:"baseline"`
	MeanNs   float64 `json:"mean_ns"`
	Files    int     `json:"files"`
}

// Comparison is the outcome of comparing two baselines of a group.
type Comparison struct {
	Group       string    `json:"group"`
	Base        Aggregate `json:"base"`
	New         Aggregate `json:"new"`
	Improvement float64   `json:"improvement"` // fraction, 0.15 = 15% faster
	Threshold   float64   `json:"threshold"`
}

// Passed reports whether the improvement met the threshold.
func (c Comparison) Passed() bool {
	return c.Improvement >= c.Threshold
}

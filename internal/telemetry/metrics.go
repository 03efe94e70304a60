package telemetry

import (
	"fmt"

	"benchci/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauges exported after a run. Each instance owns its own
// registry so the textfile contains only benchmark series.
type Metrics struct {
	registry *prometheus.Registry

	EstimateMean      *prometheus.GaugeVec
	EstimateStdDev    *prometheus.GaugeVec
	BaselineAggregate *prometheus.GaugeVec
	Improvement       *prometheus.GaugeVec
	CheckPassed       *prometheus.GaugeVec
}

// NewMetrics creates and registers all benchmark gauges.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.EstimateMean = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchci_estimate_mean_seconds",
			Help: "Mean point estimate of the latest run of a benchmark",
		},
		[]string{"benchmark"},
	)

	m.EstimateStdDev = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchci_estimate_stddev_seconds",
			Help: "Standard deviation point estimate of the latest run of a benchmark",
		},
		[]string{"benchmark"},
	)

	m.BaselineAggregate = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchci_baseline_aggregate_nanoseconds",
			Help: "Sum of mean point estimates of a baseline within a group",
		},
		[]string{"group", "baseline"},
	)

	m.Improvement = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchci_improvement_ratio",
			Help: "Fractional decrease of the new aggregate relative to base",
		},
		[]string{"group"},
	)

	m.CheckPassed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchci_check_passed",
			Help: "1 if the speedup threshold was met, 0 otherwise",
		},
		[]string{"group"},
	)

	m.registry.MustRegister(
		m.EstimateMean,
		m.EstimateStdDev,
		m.BaselineAggregate,
		m.Improvement,
		m.CheckPassed,
	)

	return m
}

// ObserveResults records one gauge pair per summarized benchmark.
func (m *Metrics) ObserveResults(results []benchmark.Result) {
	for _, r := range results {
		m.EstimateMean.WithLabelValues(r.Name).Set(r.MeanSeconds)
		m.EstimateStdDev.WithLabelValues(r.Name).Set(r.StdDevSeconds)
	}
}

// ObserveComparison records the aggregates and outcome of a check.
func (m *Metrics) ObserveComparison(c benchmark.Comparison) {
	m.BaselineAggregate.WithLabelValues(c.Group, c.Base.Baseline).Set(c.Base.MeanNs)
	m.BaselineAggregate.WithLabelValues(c.Group, c.New.Baseline).Set(c.New.MeanNs)
	m.Improvement.WithLabelValues(c.Group).Set(c.Improvement)

	passed := 0.0
	if c.Passed() {
		passed = 1
	}
	m.CheckPassed.WithLabelValues(c.Group).Set(passed)
}

// WriteTextfile writes all gauges in the text exposition format, atomically,
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

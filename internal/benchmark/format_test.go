package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"seconds", 2.5, "2.50 s"},
		{"exactly one second", 1.0, "1.00 s"},
		{"milliseconds", 0.05, "50.00 ms"},
		{"exactly one millisecond", 0.001, "1.00 ms"},
		{"microseconds", 0.000_02, "20.00 µs"},
		{"sub microsecond", 0.000_000_5, "0.50 µs"},
		{"zero", 0, "0.00 µs"},
		{"large", 125.0, "125.00 s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown([]Result{
		{Name: "groupA/funcA", MeanSeconds: 2.5, StdDevSeconds: 0.05},
		{Name: "groupA/funcB", MeanSeconds: 0.0002, StdDevSeconds: 0.000001},
	})

	want := "Benchmark summary\n" +
		"\n" +
		"| Benchmark | Mean | Std Dev |\n" +
		"| --- | --- | --- |\n" +
		"| `groupA/funcA` | 2.50 s | 50.00 ms |\n" +
		"| `groupA/funcB` | 200.00 µs | 1.00 µs |\n"
	assert.Equal(t, want, out)
}

func TestRenderMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "No benchmark results found.\n", RenderMarkdown(nil))
}

func TestFormatComparison(t *testing.T) {
	c := Comparison{
		Base:        Aggregate{MeanNs: 1_000_000_000},
		New:         Aggregate{MeanNs: 850_000_000},
		Improvement: 0.15,
	}
	assert.Equal(t, "Improvement: 15.0% (base=1e+09, new=8.5e+08)", FormatComparison(c))
}

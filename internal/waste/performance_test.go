package waste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscore/internal/model"
)

func storefrontAnalysis() PerformanceConversionAnalysis {
	return PerformanceConversionAnalysis{
		Name:               "storefront",
		PerformanceMetrics: []string{"load_time", "performance_score"},
		ConversionMetrics:  []string{"conversion_rate", "bounce_rate"},
		BenchmarkData: BenchmarkData{
			Performance: map[string]float64{"load_time": 3.0, "performance_score": 80},
			Conversion:  map[string]float64{"conversion_rate": 2.5, "bounce_rate": 45},
		},
		EstimatedMonthlyWaste: 500,
	}
}

func TestAnalyzePerformanceConversion_Multiplier(t *testing.T) {
	observed := model.Metrics{
		Performance: map[string]float64{"load_time": 4.5, "performance_score": 60},
		Conversion:  map[string]float64{"conversion_rate": 2.0, "bounce_rate": 40},
	}

	res := AnalyzePerformanceConversion(observed, []PerformanceConversionAnalysis{storefrontAnalysis()})

	require.True(t, res.IssuesDetected)
	require.Len(t, res.Analyses, 1)
	a := res.Analyses[0]
	assert.Equal(t, 4, a.MetricsChecked)
	require.Len(t, a.PerformanceIssues, 2)
	require.Len(t, a.ConversionIssues, 1)
	assert.Equal(t, "conversion_rate", a.ConversionIssues[0].Metric)

	// perf gaps 0.5 and 0.25, conversion gap 0.2.
	assert.InDelta(t, 1.0775, a.Multiplier, 1e-9)
	assert.InDelta(t, 538.75, a.EstimatedMonthlyWaste, 1e-9)
	assert.InDelta(t, 538.75, res.TotalMonthlyWaste, 1e-9)
	assert.InDelta(t, 538.75*12, res.TotalAnnualWaste, 1e-6)

	require.Len(t, res.Recommendations, 3)
	assert.Contains(t, res.Recommendations[0], "load_time")
	assert.Contains(t, res.Recommendations[1], "conversion_rate")
	assert.Contains(t, res.Recommendations[2], "performance_score")
}

func TestAnalyzePerformanceConversion_Direction(t *testing.T) {
	tests := []struct {
		name      string
		cat       model.MetricCategory
		metric    string
		observed  float64
		benchmark float64
		issue     bool
	}{
		{"slow load", model.CategoryPerformance, "load_time", 5, 3, true},
		{"fast load", model.CategoryPerformance, "load_time", 2, 3, false},
		{"high cls", model.CategoryPerformance, "cls", 0.3, 0.1, true},
		{"low perf score", model.CategoryPerformance, "performance_score", 50, 80, true},
		{"high accessibility", model.CategoryPerformance, "accessibility_score", 95, 90, false},
		{"low conversion", model.CategoryConversion, "conversion_rate", 1, 2.5, true},
		{"high checkout completion", model.CategoryConversion, "checkout_completion", 60, 45, false},
		{"high bounce", model.CategoryConversion, "bounce_rate", 60, 45, true},
		{"low cart abandonment", model.CategoryConversion, "cart_abandonment", 50, 70, false},
		{"at benchmark", model.CategoryConversion, "bounce_rate", 45, 45, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := PerformanceConversionAnalysis{Name: "one", EstimatedMonthlyWaste: 100}
			observed := model.Metrics{}
			if tt.cat == model.CategoryPerformance {
				a.BenchmarkData.Performance = map[string]float64{tt.metric: tt.benchmark}
				observed.Performance = map[string]float64{tt.metric: tt.observed}
			} else {
				a.BenchmarkData.Conversion = map[string]float64{tt.metric: tt.benchmark}
				observed.Conversion = map[string]float64{tt.metric: tt.observed}
			}

			res := AnalyzePerformanceConversion(observed, []PerformanceConversionAnalysis{a})
			assert.Equal(t, tt.issue, res.IssuesDetected)
			if tt.issue {
				assert.Greater(t, res.TotalMonthlyWaste, 100.0)
			} else {
				assert.Equal(t, 0.0, res.TotalMonthlyWaste)
			}
		})
	}
}

func TestAnalyzePerformanceConversion_OnlyComparableMetrics(t *testing.T) {
	observed := model.Metrics{
		Performance: map[string]float64{"ttfb": 9},
		Conversion:  map[string]float64{"conversion_rate": 1},
	}
	a := storefrontAnalysis()
	a.ConversionMetrics = nil

	res := AnalyzePerformanceConversion(observed, []PerformanceConversionAnalysis{a})

	require.Len(t, res.Analyses, 1)
	// ttfb is not benchmarked; conversion_rate falls back to benchmark keys.
	assert.Equal(t, 1, res.Analyses[0].MetricsChecked)
	assert.Empty(t, res.Analyses[0].PerformanceIssues)
	assert.Len(t, res.Analyses[0].ConversionIssues, 1)
}

func TestAnalyzePerformanceConversion_NoMetrics(t *testing.T) {
	res := AnalyzePerformanceConversion(model.Metrics{}, DefaultAnalyses())

	assert.False(t, res.IssuesDetected)
	assert.Equal(t, 0.0, res.TotalMonthlyWaste)
	assert.Equal(t, 0.0, res.TotalAnnualWaste)
	assert.Empty(t, res.Recommendations)
	require.Len(t, res.Analyses, 1)
	assert.Equal(t, 1.0, res.Analyses[0].Multiplier)
}

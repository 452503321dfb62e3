package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricLowerIsBetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category MetricCategory
		metric   string
		want     bool
	}{
		{CategoryPerformance, "load_time", true},
		{CategoryPerformance, "ttfb", true},
		{CategoryPerformance, "lcp", true},
		{CategoryPerformance, "cls", true},
		{CategoryPerformance, "performance_score", false},
		{CategoryPerformance, "accessibility_score", false},
		{CategoryPerformance, "seo_score", false},
		{CategoryPerformance, "unknown_metric", true},
		{CategoryConversion, "conversion_rate", false},
		{CategoryConversion, "add_to_cart_rate", false},
		{CategoryConversion, "checkout_completion", false},
		{CategoryConversion, "bounce_rate", true},
		{CategoryConversion, "cart_abandonment", true},
		{CategoryConversion, "average_order_value", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.metric, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MetricLowerIsBetter(tt.category, tt.metric))
		})
	}
}

func TestMetricGap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		category  MetricCategory
		metric    string
		observed  float64
		benchmark float64
		wantGap   float64
		wantIssue bool
	}{
		{"slow load", CategoryPerformance, "load_time", 4.5, 3.0, 0.5, true},
		{"fast load", CategoryPerformance, "load_time", 2.0, 3.0, 0, false},
		{"low perf score", CategoryPerformance, "performance_score", 35, 70, 0.5, true},
		{"high perf score", CategoryPerformance, "performance_score", 90, 70, 0, false},
		{"low conversion", CategoryConversion, "conversion_rate", 1.0, 2.0, 0.5, true},
		{"high bounce", CategoryConversion, "bounce_rate", 60, 40, 0.5, true},
		{"equal is fine", CategoryConversion, "bounce_rate", 40, 40, 0, false},
		{"zero benchmark uses absolute", CategoryPerformance, "cls", 0.3, 0, 0.3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gap, issue := MetricGap(tt.category, tt.metric, tt.observed, tt.benchmark)
			assert.Equal(t, tt.wantIssue, issue)
			assert.InDelta(t, tt.wantGap, gap, 1e-9)
			assert.GreaterOrEqual(t, gap, 0.0)
		})
	}
}

func TestMetricsEmptyAndValues(t *testing.T) {
	t.Parallel()

	assert.True(t, Metrics{}.Empty())
	m := Metrics{Conversion: map[string]float64{"conversion_rate": 1.2}}
	assert.False(t, m.Empty())
	assert.Nil(t, m.Values(CategoryPerformance))
	assert.Equal(t, 1.2, m.Values(CategoryConversion)["conversion_rate"])
	assert.Nil(t, m.Values("other"))
}

package model

import "strings"

// MetricCategory groups observed site metrics.
type MetricCategory string

const (
	CategoryPerformance MetricCategory = "performance"
	CategoryConversion  MetricCategory = "conversion"
)

// Metrics holds observed performance and conversion values keyed by metric name.
type Metrics struct {
	Performance map[string]float64 `json:"performance,omitempty" yaml:"performance,omitempty"`
	Conversion  map[string]float64 `json:"conversion,omitempty" yaml:"conversion,omitempty"`
}

// Empty reports whether no metric has been observed.
func (m Metrics) Empty() bool {
	return len(m.Performance) == 0 && len(m.Conversion) == 0
}

// Values returns the metric map for a category.
func (m Metrics) Values(category MetricCategory) map[string]float64 {
	switch category {
	case CategoryPerformance:
		return m.Performance
	case CategoryConversion:
		return m.Conversion
	default:
		return nil
	}
}

// Performance metrics where a larger value is better, in addition to any
// "_score" metric. Every other performance metric (load_time, ttfb, fcp, lcp,
// cls, fid, ...) is lower-is-better.
var higherIsBetterPerformance = map[string]bool{
	"performance_score":   true,
	"accessibility_score": true,
}

// Conversion metrics where a larger value is better. Every other conversion
// metric (bounce_rate, cart_abandonment, ...) defaults to lower-is-better.
var higherIsBetterConversion = map[string]bool{
	"conversion_rate":     true,
	"add_to_cart_rate":    true,
	"checkout_completion": true,
}

// MetricLowerIsBetter reports the direction of improvement for a metric.
func MetricLowerIsBetter(category MetricCategory, metric string) bool {
	key := NormalizeKey(metric)
	switch category {
	case CategoryPerformance:
		return !higherIsBetterPerformance[key] && !strings.HasSuffix(key, "_score")
	case CategoryConversion:
		return !higherIsBetterConversion[key]
	default:
		return true
	}
}

// MetricGap compares an observed value with a benchmark. It returns the
// non-negative relative shortfall and whether the observation is worse than the
// benchmark. Equal values are not a shortfall. When the benchmark is not
// positive the absolute difference is used instead of the relative one.
func MetricGap(category MetricCategory, metric string, observed, benchmark float64) (float64, bool) {
	var diff float64
	if MetricLowerIsBetter(category, metric) {
		diff = observed - benchmark
	} else {
		diff = benchmark - observed
	}
	if diff <= 0 {
		return 0, false
	}
	if benchmark > 0 {
		return diff / benchmark, true
	}
	return diff, true
}

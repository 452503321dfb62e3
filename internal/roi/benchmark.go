package roi

import (
	"sort"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// Comparison statuses.
const (
	StatusAhead  = "ahead"
	StatusBehind = "behind"
)

// Overall positions.
const (
	PositionLeading = "leading"
	PositionMixed   = "mixed"
	PositionLagging = "lagging"
	PositionUnknown = "unknown"
)

// CompetitorBenchmark holds typical metric values for an industry.
type CompetitorBenchmark struct {
	Industry    string             `json:"industry" yaml:"industry"`
	Performance map[string]float64 `json:"performance" yaml:"performance"`
	Conversion  map[string]float64 `json:"conversion" yaml:"conversion"`
}

// MetricComparison compares one observed metric to its benchmark. Meeting the
// benchmark exactly counts as ahead.
type MetricComparison struct {
	Metric        string  `json:"metric"`
	Observed      float64 `json:"observed"`
	Benchmark     float64 `json:"benchmark"`
	LowerIsBetter bool    `json:"lower_is_better"`
	Status        string  `json:"status"`
	GapPercentage float64 `json:"gap_percentage"`
}

// CategoryComparison tallies one metric category.
type CategoryComparison struct {
	Ahead   int                `json:"ahead"`
	Behind  int                `json:"behind"`
	Metrics []MetricComparison `json:"metrics"`
}

// Comparison is the output of CompetitorBenchmark.Compare.
type Comparison struct {
	Industry    string             `json:"industry"`
	Performance CategoryComparison `json:"performance"`
	Conversion  CategoryComparison `json:"conversion"`
	TotalAhead  int                `json:"total_ahead"`
	TotalBehind int                `json:"total_behind"`
	// AverageGapPercentage averages only the metrics where the prospect is behind.
	AverageGapPercentage float64 `json:"average_gap_percentage"`
	Position             string  `json:"position"`
}

// Compare benchmarks observed metrics. Metrics without an observation are
// skipped.
func (b *CompetitorBenchmark) Compare(observed model.Metrics) Comparison {
	c := Comparison{Industry: b.Industry}

	var gapSum float64
	c.Performance = compareCategory(model.CategoryPerformance, b.Performance, observed.Performance, &gapSum)
	c.Conversion = compareCategory(model.CategoryConversion, b.Conversion, observed.Conversion, &gapSum)

	c.TotalAhead = c.Performance.Ahead + c.Conversion.Ahead
	c.TotalBehind = c.Performance.Behind + c.Conversion.Behind
	if c.TotalBehind > 0 {
		c.AverageGapPercentage = estimate.Round2(gapSum / float64(c.TotalBehind))
	}

	switch {
	case c.TotalAhead+c.TotalBehind == 0:
		c.Position = PositionUnknown
	case c.TotalBehind == 0:
		c.Position = PositionLeading
	case c.TotalBehind > c.TotalAhead:
		c.Position = PositionLagging
	default:
		c.Position = PositionMixed
	}
	return c
}

func compareCategory(cat model.MetricCategory, benchmarks, observed map[string]float64, gapSum *float64) CategoryComparison {
	cc := CategoryComparison{Metrics: []MetricComparison{}}

	names := make([]string, 0, len(benchmarks))
	for k := range benchmarks {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		obs, ok := observed[name]
		if !ok {
			continue
		}
		bench := benchmarks[name]
		gap, behind := model.MetricGap(cat, name, obs, bench)

		mc := MetricComparison{
			Metric:        name,
			Observed:      obs,
			Benchmark:     bench,
			LowerIsBetter: model.MetricLowerIsBetter(cat, name),
			Status:        StatusAhead,
		}
		if behind {
			mc.Status = StatusBehind
			mc.GapPercentage = estimate.Round2(gap * 100)
			*gapSum += gap * 100
			cc.Behind++
		} else {
			cc.Ahead++
		}
		cc.Metrics = append(cc.Metrics, mc)
	}
	return cc
}

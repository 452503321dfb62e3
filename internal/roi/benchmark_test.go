package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscore/internal/model"
)

func TestCompare(t *testing.T) {
	b := &CompetitorBenchmark{
		Industry:    "test",
		Performance: map[string]float64{"load_time": 2.0, "performance_score": 80, "ttfb": 0.5},
		Conversion:  map[string]float64{"conversion_rate": 2.0, "bounce_rate": 40, "cart_abandonment": 70},
	}
	observed := model.Metrics{
		Performance: map[string]float64{"load_time": 3.0, "performance_score": 90},
		Conversion:  map[string]float64{"conversion_rate": 1.5, "bounce_rate": 30, "cart_abandonment": 77},
	}

	c := b.Compare(observed)

	assert.Equal(t, 1, c.Performance.Ahead)
	assert.Equal(t, 1, c.Performance.Behind)
	assert.Len(t, c.Performance.Metrics, 2, "ttfb not observed")
	assert.Equal(t, 1, c.Conversion.Ahead)
	assert.Equal(t, 2, c.Conversion.Behind)
	assert.Equal(t, 2, c.TotalAhead)
	assert.Equal(t, 3, c.TotalBehind)

	// Behind gaps: load_time 50%, conversion_rate 25%, cart_abandonment 10%.
	assert.InDelta(t, 28.33, c.AverageGapPercentage, 1e-9)
	assert.Equal(t, PositionLagging, c.Position)

	byName := map[string]MetricComparison{}
	for _, m := range append(c.Performance.Metrics, c.Conversion.Metrics...) {
		byName[m.Metric] = m
	}
	assert.Equal(t, StatusBehind, byName["load_time"].Status)
	assert.True(t, byName["load_time"].LowerIsBetter)
	assert.Equal(t, StatusAhead, byName["performance_score"].Status)
	assert.Equal(t, 0.0, byName["performance_score"].GapPercentage)
	assert.Equal(t, StatusAhead, byName["bounce_rate"].Status)
	assert.InDelta(t, 10.0, byName["cart_abandonment"].GapPercentage, 1e-9)
}

func TestCompare_LeadersDoNotDiluteGap(t *testing.T) {
	b := &CompetitorBenchmark{Performance: map[string]float64{"load_time": 2, "lcp": 2, "fcp": 2}}
	c := b.Compare(model.Metrics{Performance: map[string]float64{"load_time": 3, "lcp": 1, "fcp": 1}})

	assert.Equal(t, 1, c.TotalBehind)
	assert.InDelta(t, 50.0, c.AverageGapPercentage, 1e-9)
	assert.Equal(t, PositionMixed, c.Position)
}

func TestCompare_Positions(t *testing.T) {
	b := BenchmarkFor(IndustryDefault)

	c := b.Compare(model.Metrics{})
	assert.Equal(t, PositionUnknown, c.Position)
	assert.Equal(t, 0.0, c.AverageGapPercentage)
	assert.NotNil(t, c.Performance.Metrics)

	c = b.Compare(model.Metrics{Performance: map[string]float64{"load_time": 1, "performance_score": 99}})
	assert.Equal(t, PositionLeading, c.Position)
	assert.Equal(t, 2, c.TotalAhead)
}

func TestCompare_UnlistedConversionMetricIsLowerBetter(t *testing.T) {
	b := &CompetitorBenchmark{Conversion: map[string]float64{"refund_rate": 5}}

	c := b.Compare(model.Metrics{Conversion: map[string]float64{"refund_rate": 6}})
	require.Len(t, c.Conversion.Metrics, 1)
	assert.Equal(t, StatusBehind, c.Conversion.Metrics[0].Status)
}

func TestBenchmarkFor(t *testing.T) {
	tests := []struct {
		industry string
		want     string
	}{
		{"ecommerce", IndustryEcommerce},
		{"Retail", IndustryEcommerce},
		{"saas", IndustrySaaS},
		{"software", IndustrySaaS},
		{"legal", IndustryProfessionalServices},
		{"professional_services", IndustryProfessionalServices},
		{"mining", IndustryDefault},
		{"", IndustryDefault},
	}
	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			assert.Equal(t, tt.want, BenchmarkFor(tt.industry).Industry)
		})
	}
}

func TestBenchmarkFor_ReturnsCopies(t *testing.T) {
	a := BenchmarkFor(IndustrySaaS)
	a.Performance["load_time"] = 99
	assert.Equal(t, 2.2, BenchmarkFor(IndustrySaaS).Performance["load_time"])
}

func TestBenchmarkForProspect(t *testing.T) {
	assert.Equal(t, IndustrySaaS, BenchmarkForProspect(&model.Prospect{Industry: model.String("fintech")}).Industry)
	assert.Equal(t, IndustryDefault, BenchmarkForProspect(&model.Prospect{}).Industry)
}

// Package roi turns a monthly waste baseline into a time-phased savings
// projection and benchmarks a prospect against its industry.
package roi

import (
	"strconv"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// HorizonPilot is the half-month pilot horizon key.
const HorizonPilot = "pilot"

// Months is the number of monthly horizons.
const Months = 12

// Fixed extrapolation multipliers. Q2-Q4 and years 2-3 are approximations,
// not roll-ups of the monthly chain.
const (
	pilotShare     = 0.5
	q2Multiplier   = 1.1
	q3Multiplier   = 1.2
	q4Multiplier   = 0.9
	year2Growth    = 1.3
	year3Growth    = 1.5
	pilotAnnualize = 24
)

// MonthKey returns the horizon key for month n, e.g. "month3".
func MonthKey(n int) string {
	return "month" + strconv.Itoa(n)
}

// ProjectedSavings drives the projection. A horizon missing from
// ConfidenceLevels has confidence 1.0; one missing from GrowthFactors has
// growth 0.
type ProjectedSavings struct {
	BaselineMonthlyWaste float64            `json:"baseline_monthly_waste" yaml:"baseline_monthly_waste"`
	GrowthFactors        map[string]float64 `json:"growth_factors" yaml:"growth_factors"`
	ConfidenceLevels     map[string]float64 `json:"confidence_levels" yaml:"confidence_levels"`
}

// DefaultGrowthFactors returns the built-in month-over-month growth table.
func DefaultGrowthFactors() map[string]float64 {
	g := map[string]float64{
		MonthKey(2): 0.10,
		MonthKey(3): 0.10,
	}
	for n := 4; n <= 6; n++ {
		g[MonthKey(n)] = 0.05
	}
	for n := 7; n <= Months; n++ {
		g[MonthKey(n)] = 0.03
	}
	return g
}

// DefaultConfidenceLevels returns the built-in confidence table. Confidence
// rises as savings are verified.
func DefaultConfidenceLevels() map[string]float64 {
	c := map[string]float64{
		HorizonPilot: 0.6,
		MonthKey(1):  0.7,
		MonthKey(2):  0.95,
		MonthKey(3):  0.95,
	}
	for n := 4; n <= 6; n++ {
		c[MonthKey(n)] = 0.97
	}
	for n := 7; n <= Months; n++ {
		c[MonthKey(n)] = 0.98
	}
	return c
}

// NewProjectedSavings creates a projection over baseline. An empty table is
// replaced by its built-in default.
func NewProjectedSavings(baseline float64, growth, confidence map[string]float64) *ProjectedSavings {
	if len(growth) == 0 {
		growth = DefaultGrowthFactors()
	}
	if len(confidence) == 0 {
		confidence = DefaultConfidenceLevels()
	}
	return &ProjectedSavings{
		BaselineMonthlyWaste: baseline,
		GrowthFactors:        growth,
		ConfidenceLevels:     confidence,
	}
}

// MonthlyProjections holds the pilot and month 1-12 figures.
type MonthlyProjections struct {
	Pilot  float64   `json:"pilot"`
	Months []float64 `json:"months"`
}

// Month returns the figure for month n (1-based), or 0 out of range.
func (m MonthlyProjections) Month(n int) float64 {
	if n < 1 || n > len(m.Months) {
		return 0
	}
	return m.Months[n-1]
}

// QuarterlyProjections holds the year-1 quarters.
type QuarterlyProjections struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
	Q4 float64 `json:"q4"`
}

// AnnualProjections holds years 1-3.
type AnnualProjections struct {
	Year1 float64 `json:"year1"`
	Year2 float64 `json:"year2"`
	Year3 float64 `json:"year3"`
}

// ThreeYearProjections totals the annual figures.
type ThreeYearProjections struct {
	Total          float64 `json:"total"`
	MonthlyAverage float64 `json:"monthly_average"`
}

// ROIMetrics expresses savings as a percentage of annual revenue. All are 0
// when revenue is unknown or not positive.
type ROIMetrics struct {
	PilotROI     float64 `json:"pilot_roi"`
	Year1ROI     float64 `json:"year1_roi"`
	ThreeYearROI float64 `json:"three_year_roi"`
}

// Projection is the output of ProjectedSavings.Calculate.
type Projection struct {
	BaselineMonthlyWaste float64              `json:"baseline_monthly_waste"`
	ScaleFactor          float64              `json:"scale_factor"`
	ScaledBaseline       float64              `json:"scaled_baseline"`
	Monthly              MonthlyProjections   `json:"monthly_projections"`
	Quarterly            QuarterlyProjections `json:"quarterly_projections"`
	Annual               AnnualProjections    `json:"annual_projections"`
	ThreeYear            ThreeYearProjections `json:"three_year_projections"`
	ROI                  ROIMetrics           `json:"roi_metrics"`
}

// Calculate projects savings for a prospect. The baseline is scaled by the
// prospect's size and revenue factors, then chained month over month: each
// month is the previous month x (1 + growth) x confidence.
func (s *ProjectedSavings) Calculate(p *model.Prospect) Projection {
	scale := estimate.ProspectScale(p)
	base := estimate.NonNegative(s.BaselineMonthlyWaste) * scale

	proj := Projection{
		BaselineMonthlyWaste: estimate.NonNegative(s.BaselineMonthlyWaste),
		ScaleFactor:          scale,
		ScaledBaseline:       base,
		Monthly: MonthlyProjections{
			Pilot:  base * pilotShare * s.confidence(HorizonPilot),
			Months: make([]float64, Months),
		},
	}

	prev := base * s.confidence(MonthKey(1))
	proj.Monthly.Months[0] = prev
	for n := 2; n <= Months; n++ {
		key := MonthKey(n)
		prev = estimate.NonNegative(prev * (1 + s.growth(key)) * s.confidence(key))
		proj.Monthly.Months[n-1] = prev
	}

	m := proj.Monthly
	proj.Quarterly = QuarterlyProjections{
		Q1: m.Month(1) + m.Month(2) + m.Month(3),
		Q2: m.Month(3) * q2Multiplier * 3,
		Q3: m.Month(6) * q3Multiplier * 3,
		Q4: m.Month(12) * q4Multiplier * 3,
	}

	q := proj.Quarterly
	year1 := q.Q1 + q.Q2 + q.Q3 + q.Q4
	proj.Annual = AnnualProjections{
		Year1: year1,
		Year2: year1 * year2Growth,
		Year3: year1 * year3Growth,
	}

	total := proj.Annual.Year1 + proj.Annual.Year2 + proj.Annual.Year3
	proj.ThreeYear = ThreeYearProjections{
		Total:          total,
		MonthlyAverage: total / (3 * Months),
	}

	proj.ROI = ROIMetrics{
		PilotROI:     estimate.ROIPercentage(proj.Monthly.Pilot*pilotAnnualize, p),
		Year1ROI:     estimate.ROIPercentage(year1, p),
		ThreeYearROI: estimate.ROIPercentage(total, p),
	}
	return proj
}

func (s *ProjectedSavings) confidence(key string) float64 {
	c, ok := s.ConfidenceLevels[key]
	if !ok {
		return 1
	}
	return estimate.Clamp(c, 0, 1)
}

func (s *ProjectedSavings) growth(key string) float64 {
	g, ok := s.GrowthFactors[key]
	if !ok {
		return 0
	}
	if g < -1 {
		return -1
	}
	return g
}

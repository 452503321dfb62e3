package waste

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/model"
)

// priorityRecommendationsPerSource caps how many redundancy and how many
// performance/conversion recommendations reach the summary.
const priorityRecommendationsPerSource = 2

// LeakSummary rolls every detector's output into the figures consumed by
// reporting.
type LeakSummary struct {
	TotalMonthlyWaste       float64  `json:"total_monthly_waste"`
	TotalAnnualWaste        float64  `json:"total_annual_waste"`
	TotalMonthlySavings     float64  `json:"total_monthly_savings"`
	TotalAnnualSavings      float64  `json:"total_annual_savings"`
	TotalThreeYearSavings   float64  `json:"total_three_year_savings"`
	ROIPercentage           float64  `json:"roi_percentage"`
	PriorityRecommendations []string `json:"priority_recommendations"`
}

// LeakReport is the full financial leak assessment for one prospect.
type LeakReport struct {
	Domain                string            `json:"domain"`
	Metrics               model.Metrics     `json:"metrics"`
	MetricsError          string            `json:"metrics_error,omitempty"`
	Redundancy            RedundancyResult  `json:"redundancy"`
	PerformanceConversion PerformanceResult `json:"performance_conversion"`
	SaaSWaste             SaaSWasteResult   `json:"saas_waste"`
	VerifiedSavings       SavingsResult     `json:"verified_savings"`
	Summary               LeakSummary       `json:"summary"`
}

// Detector runs every leak detector over a prospect. It is safe for
// concurrent use when its provider is.
type Detector struct {
	rules    Rules
	provider MetricsProvider
}

// NewDetector creates a Detector. A nil provider reports no metrics, so the
// performance/conversion analysis finds nothing.
func NewDetector(rules Rules, provider MetricsProvider) *Detector {
	if provider == nil {
		provider = noMetrics
	}
	return &Detector{rules: rules, provider: provider}
}

// Rules returns the detector's rule sets.
func (d *Detector) Rules() Rules {
	return d.rules
}

// DetectFinancialLeaks fetches metrics and runs the redundancy, performance,
// profile waste and savings detectors. A failed metrics fetch degrades to no
// metrics. A nil profile skips profile waste patterns.
func (d *Detector) DetectFinancialLeaks(ctx context.Context, p *model.Prospect, profile *icp.ICP) LeakReport {
	report := LeakReport{Domain: p.Domain}

	metrics, err := d.provider.FetchMetrics(ctx, p)
	if err != nil {
		zap.L().Warn("waste: metrics unavailable, continuing without",
			zap.String("domain", p.Domain),
			zap.Error(err),
		)
		report.MetricsError = err.Error()
		metrics = model.Metrics{}
	}
	report.Metrics = metrics

	report.Redundancy = DetectRedundantApps(p.Technologies, d.rules.Redundancy)
	report.PerformanceConversion = AnalyzePerformanceConversion(metrics, d.rules.Analyses)

	var patterns []icp.SaaSWastePattern
	if profile != nil {
		patterns = profile.WastePatterns
	}
	report.SaaSWaste = DetectSaaSWaste(p.Technologies, patterns)
	report.VerifiedSavings = CalculateVerifiedSavings(p, d.rules.Savings)

	monthly := report.Redundancy.TotalMonthlyWaste +
		report.PerformanceConversion.TotalMonthlyWaste +
		report.SaaSWaste.TotalMonthlyWaste

	report.Summary = LeakSummary{
		TotalMonthlyWaste:     monthly,
		TotalAnnualWaste:      monthly * 12,
		TotalMonthlySavings:   report.VerifiedSavings.TotalMonthlySavings,
		TotalAnnualSavings:    report.VerifiedSavings.TotalAnnualSavings,
		TotalThreeYearSavings: report.VerifiedSavings.TotalThreeYearSavings,
		ROIPercentage:         report.VerifiedSavings.ROIPercentage,
		PriorityRecommendations: priorityRecommendations(
			report.Redundancy.Recommendations,
			report.PerformanceConversion.Recommendations,
		),
	}

	zap.L().Debug("waste: leaks detected",
		zap.String("domain", p.Domain),
		zap.Float64("monthly_waste", monthly),
		zap.Int("redundancies", len(report.Redundancy.PatternsMatched)),
	)
	return report
}

func priorityRecommendations(redundancy, performance []string) []string {
	out := make([]string, 0, 2*priorityRecommendationsPerSource)
	out = append(out, head(redundancy, priorityRecommendationsPerSource)...)
	out = append(out, head(performance, priorityRecommendationsPerSource)...)
	return out
}

func head(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

package waste

import (
	"fmt"
	"sort"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// Gap weights in the waste multiplier. Conversion gaps count double.
const (
	performanceGapWeight = 0.1
	conversionGapWeight  = 0.2
)

// MetricIssue is a metric that is worse than its benchmark. Gap is the
// relative shortfall (0.25 = 25% worse).
type MetricIssue struct {
	Category      model.MetricCategory `json:"category"`
	Metric        string               `json:"metric"`
	Observed      float64              `json:"observed"`
	Benchmark     float64              `json:"benchmark"`
	Gap           float64              `json:"gap"`
	LowerIsBetter bool                 `json:"lower_is_better"`
}

// AnalysisResult is the outcome of one PerformanceConversionAnalysis.
type AnalysisResult struct {
	Name                  string        `json:"name"`
	IssuesDetected        bool          `json:"issues_detected"`
	MetricsChecked        int           `json:"metrics_checked"`
	PerformanceIssues     []MetricIssue `json:"performance_issues"`
	ConversionIssues      []MetricIssue `json:"conversion_issues"`
	Multiplier            float64       `json:"multiplier"`
	EstimatedMonthlyWaste float64       `json:"estimated_monthly_waste"`
	Recommendations       []string      `json:"recommendations"`
}

// PerformanceResult is the output of AnalyzePerformanceConversion.
type PerformanceResult struct {
	IssuesDetected    bool             `json:"issues_detected"`
	Analyses          []AnalysisResult `json:"analyses"`
	TotalMonthlyWaste float64          `json:"total_monthly_waste"`
	TotalAnnualWaste  float64          `json:"total_annual_waste"`
	Recommendations   []string         `json:"recommendations"`
}

// AnalyzePerformanceConversion checks observed metrics against each
// analysis's benchmarks. A metric is checked only when it is both benchmarked
// and observed. An analysis with issues contributes its base waste scaled by
// 1 + 0.1 x mean performance gap + 0.2 x mean conversion gap.
func AnalyzePerformanceConversion(observed model.Metrics, analyses []PerformanceConversionAnalysis) PerformanceResult {
	res := PerformanceResult{
		Analyses:        []AnalysisResult{},
		Recommendations: []string{},
	}

	for _, a := range analyses {
		ar := AnalysisResult{
			Name:              a.Name,
			PerformanceIssues: []MetricIssue{},
			ConversionIssues:  []MetricIssue{},
			Multiplier:        1,
			Recommendations:   []string{},
		}

		var checked int
		ar.PerformanceIssues, checked = findIssues(model.CategoryPerformance, a.PerformanceMetrics, a.BenchmarkData.Performance, observed.Performance)
		ar.MetricsChecked += checked
		ar.ConversionIssues, checked = findIssues(model.CategoryConversion, a.ConversionMetrics, a.BenchmarkData.Conversion, observed.Conversion)
		ar.MetricsChecked += checked

		ar.IssuesDetected = len(ar.PerformanceIssues) > 0 || len(ar.ConversionIssues) > 0
		if ar.IssuesDetected {
			ar.Multiplier = 1 +
				performanceGapWeight*meanGap(ar.PerformanceIssues) +
				conversionGapWeight*meanGap(ar.ConversionIssues)
			ar.EstimatedMonthlyWaste = estimate.NonNegative(a.EstimatedMonthlyWaste) * ar.Multiplier
			ar.Recommendations = issueRecommendations(ar.PerformanceIssues, ar.ConversionIssues)

			res.IssuesDetected = true
			res.TotalMonthlyWaste += ar.EstimatedMonthlyWaste
			res.Recommendations = append(res.Recommendations, ar.Recommendations...)
		}

		res.Analyses = append(res.Analyses, ar)
	}

	res.TotalAnnualWaste = res.TotalMonthlyWaste * 12
	return res
}

// findIssues returns the metrics of one category that are worse than their
// benchmark, plus how many metrics could be compared.
func findIssues(cat model.MetricCategory, metrics []string, benchmarks, observed map[string]float64) ([]MetricIssue, int) {
	issues := []MetricIssue{}
	if len(benchmarks) == 0 || len(observed) == 0 {
		return issues, 0
	}
	if len(metrics) == 0 {
		metrics = benchmarkKeys(benchmarks)
	}

	checked := 0
	for _, name := range metrics {
		bench, ok := benchmarks[name]
		if !ok {
			continue
		}
		obs, ok := observed[name]
		if !ok {
			continue
		}
		checked++

		gap, issue := model.MetricGap(cat, name, obs, bench)
		if !issue {
			continue
		}
		issues = append(issues, MetricIssue{
			Category:      cat,
			Metric:        name,
			Observed:      obs,
			Benchmark:     bench,
			Gap:           gap,
			LowerIsBetter: model.MetricLowerIsBetter(cat, name),
		})
	}
	return issues, checked
}

func meanGap(issues []MetricIssue) float64 {
	if len(issues) == 0 {
		return 0
	}
	var sum float64
	for _, i := range issues {
		sum += i.Gap
	}
	return sum / float64(len(issues))
}

// issueRecommendations orders issues by their weighted contribution to the
// multiplier, largest first.
func issueRecommendations(perf, conv []MetricIssue) []string {
	type ranked struct {
		issue  MetricIssue
		impact float64
	}
	all := make([]ranked, 0, len(perf)+len(conv))
	for _, i := range perf {
		all = append(all, ranked{i, i.Gap * performanceGapWeight})
	}
	for _, i := range conv {
		all = append(all, ranked{i, i.Gap * conversionGapWeight})
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].impact > all[b].impact })

	out := make([]string, 0, len(all))
	for _, r := range all {
		direction := "Raise"
		if r.issue.LowerIsBetter {
			direction = "Reduce"
		}
		out = append(out, fmt.Sprintf("%s %s %s from %.2f to the %.2f benchmark (%.0f%% gap).",
			direction, r.issue.Category, r.issue.Metric,
			r.issue.Observed, r.issue.Benchmark, r.issue.Gap*100))
	}
	return out
}

func benchmarkKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package waste

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// CategoryOverflow is a category holding more tools than a pattern allows.
type CategoryOverflow struct {
	Category  string   `json:"category"`
	ToolCount int      `json:"tool_count"`
	MaxTools  int      `json:"max_tools"`
	Tools     []string `json:"tools"`
}

// RedundancyMatch is a pattern that fired for a prospect.
type RedundancyMatch struct {
	Pattern               string             `json:"pattern"`
	Description           string             `json:"description"`
	Priority              int                `json:"priority"`
	Categories            []CategoryOverflow `json:"categories"`
	EstimatedMonthlyWaste float64            `json:"estimated_monthly_waste"`
	Recommendation        string             `json:"recommendation"`
}

// RedundancyResult is the output of DetectRedundantApps.
type RedundancyResult struct {
	RedundanciesDetected bool              `json:"redundancies_detected"`
	PatternsMatched      []RedundancyMatch `json:"patterns_matched"`
	TotalMonthlyWaste    float64           `json:"total_monthly_waste"`
	TotalAnnualWaste     float64           `json:"total_annual_waste"`
	Recommendations      []string          `json:"recommendations"`
}

// DetectRedundantApps groups technologies by category and reports every
// pattern with at least one category over its tool limit. A pattern adds its
// waste once no matter how many of its categories overflow. Matches and
// recommendations are ordered by priority, highest first.
func DetectRedundantApps(techs []model.Technology, patterns []AppRedundancyPattern) RedundancyResult {
	res := RedundancyResult{
		PatternsMatched: []RedundancyMatch{},
		Recommendations: []string{},
	}
	if len(techs) == 0 || len(patterns) == 0 {
		return res
	}

	groups := (&model.Prospect{Technologies: techs}).ToolsByCategory()

	for _, pat := range patterns {
		limit := pat.MaxToolsPerCategory
		if limit < 1 {
			limit = 1
		}

		var overflows []CategoryOverflow
		for _, cat := range pat.Categories {
			tools := groups[model.NormalizeKey(cat)]
			if len(tools) <= limit {
				continue
			}
			overflows = append(overflows, CategoryOverflow{
				Category:  cat,
				ToolCount: len(tools),
				MaxTools:  limit,
				Tools:     sortedKeys(tools),
			})
		}
		if len(overflows) == 0 {
			continue
		}

		monthly := estimate.NonNegative(pat.EstimatedMonthlyWaste)
		res.PatternsMatched = append(res.PatternsMatched, RedundancyMatch{
			Pattern:               pat.Name,
			Description:           pat.Description,
			Priority:              pat.Priority,
			Categories:            overflows,
			EstimatedMonthlyWaste: monthly,
			Recommendation:        redundancyRecommendation(pat, overflows, monthly),
		})
		res.TotalMonthlyWaste += monthly
	}

	sort.SliceStable(res.PatternsMatched, func(i, j int) bool {
		return res.PatternsMatched[i].Priority > res.PatternsMatched[j].Priority
	})
	for _, m := range res.PatternsMatched {
		res.Recommendations = append(res.Recommendations, m.Recommendation)
	}

	res.RedundanciesDetected = len(res.PatternsMatched) > 0
	res.TotalAnnualWaste = res.TotalMonthlyWaste * 12
	return res
}

func redundancyRecommendation(pat AppRedundancyPattern, overflows []CategoryOverflow, monthly float64) string {
	parts := make([]string, 0, len(overflows))
	for _, o := range overflows {
		parts = append(parts, fmt.Sprintf("%s (%s)", o.Category, strings.Join(o.Tools, ", ")))
	}
	return fmt.Sprintf("Consolidate %s: %s; about $%.0f/month recoverable.",
		strings.ReplaceAll(pat.Name, "_", " "), strings.Join(parts, "; "), monthly)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

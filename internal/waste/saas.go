package waste

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/model"
)

// SaaSWasteMatch is a profile waste pattern that fired.
type SaaSWasteMatch struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Priority              int      `json:"priority"`
	MatchedTechnologies   []string `json:"matched_technologies"`
	EstimatedMonthlyWaste float64  `json:"estimated_monthly_waste"`
}

// SaaSWasteResult is the output of DetectSaaSWaste.
type SaaSWasteResult struct {
	PatternsMatched   []SaaSWasteMatch `json:"patterns_matched"`
	TotalMonthlyWaste float64          `json:"total_monthly_waste"`
	TotalAnnualWaste  float64          `json:"total_annual_waste"`
	Recommendations   []string         `json:"recommendations"`
}

// DetectSaaSWaste matches a profile's waste patterns against "category:name"
// of every technology. A pattern fires once it matches its threshold of
// distinct technologies. Patterns that fail to compile never match.
func DetectSaaSWaste(techs []model.Technology, patterns []icp.SaaSWastePattern) SaaSWasteResult {
	res := SaaSWasteResult{
		PatternsMatched: []SaaSWasteMatch{},
		Recommendations: []string{},
	}
	if len(techs) == 0 {
		return res
	}

	keys := techKeys(techs)
	for _, pat := range patterns {
		re, err := pat.Compile()
		if err != nil {
			zap.L().Debug("waste: skipping saas pattern", zap.String("pattern", pat.Name), zap.Error(err))
			continue
		}

		var hits []string
		for _, k := range keys {
			if re.MatchString(k) {
				hits = append(hits, k)
			}
		}
		if len(hits) < pat.Threshold() {
			continue
		}

		res.PatternsMatched = append(res.PatternsMatched, SaaSWasteMatch{
			Name:                  pat.Name,
			Description:           pat.Description,
			Priority:              pat.Priority,
			MatchedTechnologies:   hits,
			EstimatedMonthlyWaste: estimate.NonNegative(pat.EstimatedMonthlyWaste),
		})
	}

	sort.SliceStable(res.PatternsMatched, func(i, j int) bool {
		return res.PatternsMatched[i].Priority > res.PatternsMatched[j].Priority
	})
	for _, m := range res.PatternsMatched {
		res.TotalMonthlyWaste += m.EstimatedMonthlyWaste
		res.Recommendations = append(res.Recommendations,
			fmt.Sprintf("Review %s: %s.", m.Name, m.Description))
	}
	res.TotalAnnualWaste = res.TotalMonthlyWaste * 12
	return res
}

// techKeys returns the distinct lowercased "category:name" keys in a stable order.
func techKeys(techs []model.Technology) []string {
	seen := make(map[string]bool, len(techs))
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		cat, name := model.NormalizeKey(t.Category), model.NormalizeKey(t.Name)
		if name == "" {
			continue
		}
		k := cat + ":" + name
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

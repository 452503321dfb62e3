package icp

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// Point budgets per scoring factor.
const (
	revenueBudget    = 25.0
	employeeBudget   = 15.0
	industryBudget   = 20.0
	countryBudget    = 15.0
	technologyBudget = 25.0
)

// Partial-credit caps for values outside the target range. Being too small is
// penalized more than being too large.
const (
	belowRangeCap = 0.8
	aboveRangeCap = 0.9
)

// requiredWeightMultiplier doubles the weight of required technology categories.
const requiredWeightMultiplier = 2.0

// Factor names used in ScoreBreakdown.
const (
	FactorRevenue    = "revenue"
	FactorEmployees  = "employee_count"
	FactorIndustry   = "industry"
	FactorCountry    = "country"
	FactorTechnology = "technology"
)

// FactorScore records the points earned against a factor's budget.
type FactorScore struct {
	Earned float64 `json:"earned"`
	Budget float64 `json:"budget"`
}

// ScoreBreakdown lists the applicable factors behind a match score. Factors
// whose prospect field is unknown are absent.
type ScoreBreakdown struct {
	Score   float64                `json:"score"`
	Factors map[string]FactorScore `json:"factors"`
}

// Qualification is the outcome of gating and scoring a prospect for one profile.
type Qualification struct {
	ICP       string  `json:"icp"`
	ICPType   string  `json:"icp_type"`
	Matches   bool    `json:"matches"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Qualified bool    `json:"qualified"`
}

// FootprintDetail is the per-requirement part of a technical footprint.
type FootprintDetail struct {
	Category        string   `json:"category"`
	Required        bool     `json:"required"`
	Weight          float64  `json:"weight"`
	CategoryPresent bool     `json:"category_present"`
	ListedTools     []string `json:"listed_tools"`
	MatchedTools    []string `json:"matched_tools"`
	Score           float64  `json:"score"`
	MaxScore        float64  `json:"max_score"`
}

// Footprint summarizes how a prospect's stack lines up with a profile.
type Footprint struct {
	TotalScore      float64           `json:"total_score"`
	MaxScore        float64           `json:"max_score"`
	Percentage      float64           `json:"percentage"`
	Details         []FootprintDetail `json:"details"`
	MissingCritical []string          `json:"missing_critical"`
	Recommendations []string          `json:"recommendations"`
}

// Matcher evaluates prospects against profiles. It holds no state; a nil
// profile argument means DefaultFilters.
type Matcher struct{}

// NewMatcher creates a Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Matches is the hard gate. Unknown prospect fields never fail a check.
func (m *Matcher) Matches(p *model.Prospect, profile *ICP) bool {
	profile = orDefault(profile)

	if rev, ok := p.RevenueValue(); ok {
		if profile.MinRevenue > 0 && rev < profile.MinRevenue {
			return false
		}
		if profile.MaxRevenue > 0 && rev > profile.MaxRevenue {
			return false
		}
	}

	if emp, ok := p.EmployeeValue(); ok && profile.MinEmployees != nil && profile.MaxEmployees != nil {
		if emp < *profile.MinEmployees || emp > *profile.MaxEmployees {
			return false
		}
	}

	if ind, ok := p.IndustryValue(); ok && len(profile.Industries) > 0 && !containsFold(profile.Industries, ind) {
		return false
	}
	if c, ok := p.CountryValue(); ok && len(profile.Countries) > 0 && !containsFold(profile.Countries, c) {
		return false
	}

	groups := p.ToolsByCategory()
	for _, req := range profile.TechnologyRequirements {
		if !req.Required {
			continue
		}
		present, matched := matchRequirement(req, groups)
		if !present {
			return false
		}
		if len(req.Tools) > 0 && len(matched) == 0 {
			return false
		}
	}
	return true
}

// MatchScore returns the 0-100 fit score.
func (m *Matcher) MatchScore(p *model.Prospect, profile *ICP) float64 {
	return m.Breakdown(p, profile).Score
}

// Breakdown computes the match score together with its factors. Only factors
// whose prospect field is known count toward the denominator; with no
// applicable factor the score is 0.
func (m *Matcher) Breakdown(p *model.Prospect, profile *ICP) ScoreBreakdown {
	profile = orDefault(profile)
	factors := make(map[string]FactorScore)

	if rev, ok := p.RevenueValue(); ok {
		factors[FactorRevenue] = FactorScore{
			Earned: revenueBudget * rangeCredit(rev, positiveBound(profile.MinRevenue), positiveBound(profile.MaxRevenue)),
			Budget: revenueBudget,
		}
	}

	if emp, ok := p.EmployeeValue(); ok {
		factors[FactorEmployees] = FactorScore{
			Earned: employeeBudget * rangeCredit(float64(emp), intBound(profile.MinEmployees), intBound(profile.MaxEmployees)),
			Budget: employeeBudget,
		}
	}

	if ind, ok := p.IndustryValue(); ok {
		factors[FactorIndustry] = binaryFactor(industryBudget, len(profile.Industries) == 0 || containsFold(profile.Industries, ind))
	}

	if c, ok := p.CountryValue(); ok {
		factors[FactorCountry] = binaryFactor(countryBudget, len(profile.Countries) == 0 || containsFold(profile.Countries, c))
	}

	if len(p.Technologies) > 0 {
		if fit, ok := technologyFit(profile.TechnologyRequirements, p.ToolsByCategory()); ok {
			factors[FactorTechnology] = FactorScore{
				Earned: technologyBudget * fit,
				Budget: technologyBudget,
			}
		}
	}

	var earned, budget float64
	for _, f := range factors {
		earned += f.Earned
		budget += f.Budget
	}

	score := 0.0
	if budget > 0 {
		score = (earned / budget) * 100
	}

	return ScoreBreakdown{
		Score:   estimate.Round2(estimate.Clamp(score, 0, 100)),
		Factors: factors,
	}
}

// Qualify gates and scores a prospect. A prospect is qualified when it passes
// the gate and its score reaches the profile's threshold.
func (m *Matcher) Qualify(p *model.Prospect, profile *ICP) Qualification {
	profile = orDefault(profile)
	q := Qualification{
		ICP:       profile.Name,
		ICPType:   profile.Type,
		Matches:   m.Matches(p, profile),
		Score:     m.MatchScore(p, profile),
		Threshold: profile.QualificationThreshold,
	}
	q.Qualified = q.Matches && q.Score >= q.Threshold
	return q
}

// TechnicalFootprint scores each technology requirement at weight x 10 x the
// fraction of listed tools found. A prospect with no technologies gets a zero
// result asking for manual verification.
func (m *Matcher) TechnicalFootprint(p *model.Prospect, profile *ICP) Footprint {
	profile = orDefault(profile)

	if len(p.Technologies) == 0 {
		return Footprint{
			Details:         []FootprintDetail{},
			MissingCritical: []string{},
			Recommendations: []string{
				"No technology data detected for this prospect; manually verify the stack before outreach.",
			},
		}
	}

	groups := p.ToolsByCategory()
	fp := Footprint{
		Details:         make([]FootprintDetail, 0, len(profile.TechnologyRequirements)),
		MissingCritical: []string{},
		Recommendations: []string{},
	}

	for _, req := range profile.TechnologyRequirements {
		weight := math.Max(req.Weight, 0)
		present, matched := matchRequirement(req, groups)
		detail := FootprintDetail{
			Category:        req.Category,
			Required:        req.Required,
			Weight:          weight,
			CategoryPresent: present,
			ListedTools:     req.Tools,
			MatchedTools:    matched,
			MaxScore:        weight * 10,
		}
		detail.Score = detail.MaxScore * requirementRatio(req, present, matched)

		fp.TotalScore += detail.Score
		fp.MaxScore += detail.MaxScore
		fp.Details = append(fp.Details, detail)

		switch {
		case req.Required && !present:
			fp.MissingCritical = append(fp.MissingCritical, req.Category)
			fp.Recommendations = append(fp.Recommendations, fmt.Sprintf(
				"Missing critical %s tooling; confirm whether the prospect uses %s.",
				req.Category, toolList(req.Tools)))
		case req.Required && len(req.Tools) > 0 && len(matched) == 0:
			fp.Recommendations = append(fp.Recommendations, fmt.Sprintf(
				"%s is covered by an unsupported tool; position a migration to %s.",
				req.Category, toolList(req.Tools)))
		}
	}

	if fp.MaxScore > 0 {
		fp.Percentage = estimate.Round2(estimate.Clamp(fp.TotalScore/fp.MaxScore*100, 0, 100))
	}
	fp.TotalScore = estimate.Round2(fp.TotalScore)
	fp.MaxScore = estimate.Round2(fp.MaxScore)
	return fp
}

// technologyFit returns the weighted fraction of requirements satisfied.
// Required categories count double. It reports false when no requirement
// carries weight.
func technologyFit(reqs []TechnologyRequirement, groups map[string]map[string]bool) (float64, bool) {
	var contribution, totalWeight float64
	for _, req := range reqs {
		w := math.Max(req.Weight, 0)
		if req.Required {
			w *= requiredWeightMultiplier
		}
		present, matched := matchRequirement(req, groups)
		contribution += w * requirementRatio(req, present, matched)
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0, false
	}
	return contribution / totalWeight, true
}

// matchRequirement reports whether the category is present and which listed
// tools the prospect uses within it.
func matchRequirement(req TechnologyRequirement, groups map[string]map[string]bool) (bool, []string) {
	tools := groups[model.NormalizeKey(req.Category)]
	matched := []string{}
	for _, t := range req.Tools {
		if tools[model.NormalizeKey(t)] {
			matched = append(matched, t)
		}
	}
	return len(tools) > 0, matched
}

func requirementRatio(req TechnologyRequirement, present bool, matched []string) float64 {
	if len(req.Tools) == 0 {
		if present {
			return 1
		}
		return 0
	}
	return float64(len(matched)) / float64(len(req.Tools))
}

// rangeCredit returns 1 inside [lo, hi] and partial credit outside it:
// value / nearer bound, capped at belowRangeCap or aboveRangeCap.
func rangeCredit(v float64, lo, hi *float64) float64 {
	if lo != nil && v < *lo {
		return estimate.Clamp(v / *lo, 0, belowRangeCap)
	}
	if hi != nil && v > *hi {
		return estimate.Clamp(v / *hi, 0, aboveRangeCap)
	}
	return 1
}

func positiveBound(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func intBound(v *int) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	f := float64(*v)
	return &f
}

func binaryFactor(budget float64, hit bool) FactorScore {
	if hit {
		return FactorScore{Earned: budget, Budget: budget}
	}
	return FactorScore{Budget: budget}
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

func toolList(tools []string) string {
	if len(tools) == 0 {
		return "any tool in the category"
	}
	return strings.Join(tools, ", ")
}

func orDefault(profile *ICP) *ICP {
	if profile == nil {
		return DefaultFilters()
	}
	return profile
}

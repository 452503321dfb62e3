// Package icp defines Ideal Customer Profiles and scores prospects against them.
package icp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// TechnologyRequirement describes a technology category the profile looks for.
// Tools lists the acceptable tool names within the category; an empty list is
// satisfied by any tool in the category.
type TechnologyRequirement struct {
	Category string   `json:"category" yaml:"category"`
	Tools    []string `json:"tools" yaml:"tools"`
	Required bool     `json:"required" yaml:"required"`
	Weight   float64  `json:"weight" yaml:"weight"`
}

// RevenueIndicator is a keyword group hinting at revenue potential. It is
// carried with the profile for text matching and does not affect scoring.
type RevenueIndicator struct {
	Keywords   []string `json:"keywords" yaml:"keywords"`
	Multiplier float64  `json:"multiplier" yaml:"multiplier"`
}

// SaaSWastePattern flags a known source of SaaS overspend for this profile.
// DetectionPattern is a case-insensitive regular expression matched against
// "category:name" of each technology; the pattern fires when at least
// MinMatches technologies match (default 1).
type SaaSWastePattern struct {
	Name                  string  `json:"name" yaml:"name"`
	Description           string  `json:"description" yaml:"description"`
	DetectionPattern      string  `json:"detection_pattern" yaml:"detection_pattern"`
	MinMatches            int     `json:"min_matches,omitempty" yaml:"min_matches,omitempty"`
	EstimatedMonthlyWaste float64 `json:"estimated_monthly_waste" yaml:"estimated_monthly_waste"`
	Priority              int     `json:"priority" yaml:"priority"`
}

// Compile returns the case-insensitive detection expression.
func (w SaaSWastePattern) Compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + w.DetectionPattern)
	if err != nil {
		return nil, eris.Wrapf(err, "icp: compile waste pattern %q", w.Name)
	}
	return re, nil
}

// Threshold returns the minimum number of matching technologies.
func (w SaaSWastePattern) Threshold() int {
	if w.MinMatches < 1 {
		return 1
	}
	return w.MinMatches
}

// ICP is a named targeting profile. Profiles are configuration values; every
// profile is evaluated by the same Matcher.
type ICP struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Zero bounds are unconstrained.
	MinRevenue float64 `json:"min_revenue" yaml:"min_revenue"`
	MaxRevenue float64 `json:"max_revenue" yaml:"max_revenue"`

	MinEmployees *int `json:"min_employees,omitempty" yaml:"min_employees,omitempty"`
	MaxEmployees *int `json:"max_employees,omitempty" yaml:"max_employees,omitempty"`

	// Empty lists are unconstrained.
	Industries []string `json:"industries,omitempty" yaml:"industries,omitempty"`
	Countries  []string `json:"countries,omitempty" yaml:"countries,omitempty"`

	TechnologyRequirements []TechnologyRequirement `json:"technology_requirements,omitempty" yaml:"technology_requirements,omitempty"`
	RevenueIndicators      []RevenueIndicator      `json:"revenue_indicators,omitempty" yaml:"revenue_indicators,omitempty"`
	WastePatterns          []SaaSWastePattern      `json:"waste_patterns,omitempty" yaml:"waste_patterns,omitempty"`

	QualificationThreshold float64 `json:"qualification_threshold" yaml:"qualification_threshold"`

	AvgMonthlySaaSSpend   float64 `json:"avg_monthly_saas_spend" yaml:"avg_monthly_saas_spend"`
	AvgWastePercentage    float64 `json:"avg_waste_percentage" yaml:"avg_waste_percentage"`
	AvgRecoveryPercentage float64 `json:"avg_recovery_percentage" yaml:"avg_recovery_percentage"`
}

// ExpectedMonthlyWaste is the profile's typical monthly SaaS waste:
// average spend x average waste percentage.
func (p *ICP) ExpectedMonthlyWaste() float64 {
	if p.AvgMonthlySaaSSpend <= 0 || p.AvgWastePercentage <= 0 {
		return 0
	}
	return p.AvgMonthlySaaSSpend * p.AvgWastePercentage / 100
}

// ExpectedMonthlyRecovery is the portion of ExpectedMonthlyWaste a prospect of
// this profile typically recovers.
func (p *ICP) ExpectedMonthlyRecovery() float64 {
	if p.AvgRecoveryPercentage <= 0 {
		return 0
	}
	return p.ExpectedMonthlyWaste() * p.AvgRecoveryPercentage / 100
}

// Validate checks that a profile is internally consistent.
func (p *ICP) Validate() error {
	var errs []string

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.MinRevenue < 0 || p.MaxRevenue < 0 {
		errs = append(errs, "revenue bounds must be >= 0")
	}
	if p.MaxRevenue > 0 && p.MaxRevenue < p.MinRevenue {
		errs = append(errs, "max_revenue must be >= min_revenue")
	}
	if p.MinEmployees != nil && p.MaxEmployees != nil && *p.MaxEmployees < *p.MinEmployees {
		errs = append(errs, "max_employees must be >= min_employees")
	}
	if p.QualificationThreshold < 0 || p.QualificationThreshold > 100 {
		errs = append(errs, "qualification_threshold must be between 0 and 100")
	}
	for _, pct := range []float64{p.AvgWastePercentage, p.AvgRecoveryPercentage} {
		if pct < 0 || pct > 100 {
			errs = append(errs, "average percentages must be between 0 and 100")
			break
		}
	}
	if p.AvgMonthlySaaSSpend < 0 {
		errs = append(errs, "avg_monthly_saas_spend must be >= 0")
	}
	for i, req := range p.TechnologyRequirements {
		if strings.TrimSpace(req.Category) == "" {
			errs = append(errs, fmt.Sprintf("technology_requirements[%d]: category is required", i))
		}
		if req.Weight < 0 {
			errs = append(errs, fmt.Sprintf("technology_requirements[%d]: weight must be >= 0", i))
		}
	}
	for _, w := range p.WastePatterns {
		if w.Priority < 1 || w.Priority > 5 {
			errs = append(errs, fmt.Sprintf("waste pattern %q: priority must be between 1 and 5", w.Name))
		}
		if w.EstimatedMonthlyWaste < 0 {
			errs = append(errs, fmt.Sprintf("waste pattern %q: estimated_monthly_waste must be >= 0", w.Name))
		}
		if _, err := w.Compile(); err != nil {
			errs = append(errs, fmt.Sprintf("waste pattern %q: invalid detection_pattern", w.Name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("icp: profile %q invalid: %s", p.Name, strings.Join(errs, "; "))
	}
	return nil
}

// Package model defines the prospect entities evaluated by the qualification engine.
package model

import (
	"math"
	"strings"
)

// Technology is a single tool detected in a prospect's stack.
type Technology struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Contact is a person associated with a prospect. Contacts are carried for
// downstream outreach and are never scored.
type Contact struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// Prospect is a company produced by discovery/enrichment. Firmographic fields
// are pointers: nil means unknown, and unknown fields are excluded from scoring
// rather than treated as failures.
type Prospect struct {
	Domain        string       `json:"domain" yaml:"domain"`
	CompanyName   string       `json:"company_name" yaml:"company_name"`
	Revenue       *float64     `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	EmployeeCount *int         `json:"employee_count,omitempty" yaml:"employee_count,omitempty"`
	Industry      *string      `json:"industry,omitempty" yaml:"industry,omitempty"`
	Country       *string      `json:"country,omitempty" yaml:"country,omitempty"`
	Technologies  []Technology `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Contacts      []Contact    `json:"contacts,omitempty" yaml:"contacts,omitempty"`
}

// RevenueValue returns the revenue and whether it is known. Negative and
// non-finite values are treated as unknown.
func (p *Prospect) RevenueValue() (float64, bool) {
	if p.Revenue == nil {
		return 0, false
	}
	if v := *p.Revenue; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return *p.Revenue, true
}

// EmployeeValue returns the employee count and whether it is known. A
// negative count is treated as unknown.
func (p *Prospect) EmployeeValue() (int, bool) {
	if p.EmployeeCount == nil || *p.EmployeeCount < 0 {
		return 0, false
	}
	return *p.EmployeeCount, true
}

// IndustryValue returns the trimmed industry and whether it is known.
// A blank string counts as unknown.
func (p *Prospect) IndustryValue() (string, bool) {
	return optionalString(p.Industry)
}

// CountryValue returns the trimmed country and whether it is known.
func (p *Prospect) CountryValue() (string, bool) {
	return optionalString(p.Country)
}

// Label returns the best human-readable identifier for logs and reports.
func (p *Prospect) Label() string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	return p.Domain
}

// ToolsByCategory groups technology names by lowercased category. Tool names
// are lowercased and deduplicated within a category.
func (p *Prospect) ToolsByCategory() map[string]map[string]bool {
	groups := make(map[string]map[string]bool)
	for _, t := range p.Technologies {
		cat := NormalizeKey(t.Category)
		name := NormalizeKey(t.Name)
		if cat == "" || name == "" {
			continue
		}
		if groups[cat] == nil {
			groups[cat] = make(map[string]bool)
		}
		groups[cat][name] = true
	}
	return groups
}

// NormalizeKey lowercases and trims a category or tool name for comparison.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optionalString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return "", false
	}
	return v, true
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

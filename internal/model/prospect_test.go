package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProspectOptionalFields(t *testing.T) {
	t.Parallel()

	var p Prospect
	_, ok := p.RevenueValue()
	assert.False(t, ok)
	_, ok = p.EmployeeValue()
	assert.False(t, ok)
	_, ok = p.IndustryValue()
	assert.False(t, ok)
	_, ok = p.CountryValue()
	assert.False(t, ok)

	p = Prospect{
		Revenue:       Float64(1_500_000),
		EmployeeCount: Int(25),
		Industry:      String("  ecommerce "),
		Country:       String("US"),
	}
	rev, ok := p.RevenueValue()
	assert.True(t, ok)
	assert.Equal(t, 1_500_000.0, rev)
	emp, ok := p.EmployeeValue()
	assert.True(t, ok)
	assert.Equal(t, 25, emp)
	ind, ok := p.IndustryValue()
	assert.True(t, ok)
	assert.Equal(t, "ecommerce", ind)
	c, ok := p.CountryValue()
	assert.True(t, ok)
	assert.Equal(t, "US", c)
}

func TestInvalidFirmographicsAreUnknown(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -2_000_000} {
		p := Prospect{Revenue: Float64(v)}
		_, ok := p.RevenueValue()
		assert.False(t, ok, "revenue %v", v)
	}

	p := Prospect{Revenue: Float64(0), EmployeeCount: Int(-40)}
	rev, ok := p.RevenueValue()
	assert.True(t, ok)
	assert.Equal(t, 0.0, rev)
	_, ok = p.EmployeeValue()
	assert.False(t, ok)
}

func TestIndustryBlankIsUnknown(t *testing.T) {
	t.Parallel()

	p := Prospect{Industry: String("   ")}
	_, ok := p.IndustryValue()
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acme", (&Prospect{Domain: "acme.com", CompanyName: "Acme"}).Label())
	assert.Equal(t, "acme.com", (&Prospect{Domain: "acme.com"}).Label())
}

func TestToolsByCategory(t *testing.T) {
	t.Parallel()

	p := Prospect{Technologies: []Technology{
		{Name: "Google_Analytics", Category: "Analytics"},
		{Name: "hotjar", Category: "analytics"},
		{Name: "hotjar", Category: "analytics"},
		{Name: "klaviyo", Category: "email_marketing"},
		{Name: "", Category: "crm"},
		{Name: "orphan", Category: ""},
	}}

	groups := p.ToolsByCategory()
	assert.Len(t, groups, 2)
	assert.Equal(t, map[string]bool{"google_analytics": true, "hotjar": true}, groups["analytics"])
	assert.Equal(t, map[string]bool{"klaviyo": true}, groups["email_marketing"])
}

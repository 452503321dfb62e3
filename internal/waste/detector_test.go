package waste

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/model"
)

func leakyProspect() *model.Prospect {
	return &model.Prospect{
		Domain:        "leaky.example",
		Revenue:       model.Float64(1_200_000),
		EmployeeCount: model.Int(20),
		Technologies: []model.Technology{
			{Name: "klaviyo", Category: "email_marketing"},
			{Name: "mailchimp", Category: "email_marketing"},
			{Name: "google_analytics", Category: "analytics"},
			{Name: "hotjar", Category: "analytics"},
			{Name: "shopify", Category: "ecommerce_platform"},
		},
	}
}

func TestDetectFinancialLeaks(t *testing.T) {
	provider := &mockProvider{metrics: map[string]model.Metrics{
		"leaky.example": {
			Performance: map[string]float64{"load_time": 6, "lcp": 5},
			Conversion:  map[string]float64{"conversion_rate": 1.25, "bounce_rate": 30},
		},
	}}
	d := NewDetector(DefaultRules(), provider)

	r := d.DetectFinancialLeaks(context.Background(), leakyProspect(), icp.EcommerceDTC())

	assert.Equal(t, []string{"leaky.example"}, provider.calls)
	assert.Empty(t, r.MetricsError)

	// email 250 + analytics 150
	assert.InDelta(t, 400.0, r.Redundancy.TotalMonthlyWaste, 1e-9)
	// perf gaps 1.0 and 1.0, conversion gap 0.5 -> 500 * 1.2
	assert.InDelta(t, 600.0, r.PerformanceConversion.TotalMonthlyWaste, 1e-9)
	assert.InDelta(t, 300.0, r.SaaSWaste.TotalMonthlyWaste, 1e-9)

	s := r.Summary
	assert.InDelta(t, 1300.0, s.TotalMonthlyWaste, 1e-9)
	assert.InDelta(t, s.TotalMonthlyWaste*12, s.TotalAnnualWaste, 1e-6)

	// cost 400*1*0.8 + revenue 600*1*0.6 + efficiency 250*0.7
	assert.InDelta(t, 855.0, s.TotalMonthlySavings, 1e-9)
	assert.InDelta(t, s.TotalMonthlySavings*12, s.TotalAnnualSavings, 1e-6)
	assert.InDelta(t, s.TotalAnnualSavings*3, s.TotalThreeYearSavings, 1e-6)
	assert.InDelta(t, 855.0*12/1_200_000*100, s.ROIPercentage, 1e-9)

	require.Len(t, s.PriorityRecommendations, 4)
	assert.Equal(t, r.Redundancy.Recommendations[0], s.PriorityRecommendations[0])
	assert.Equal(t, r.Redundancy.Recommendations[1], s.PriorityRecommendations[1])
	assert.Equal(t, r.PerformanceConversion.Recommendations[0], s.PriorityRecommendations[2])
	assert.Equal(t, r.PerformanceConversion.Recommendations[1], s.PriorityRecommendations[3])
}

func TestDetectFinancialLeaks_CapsRecommendations(t *testing.T) {
	p := leakyProspect()
	p.Technologies = append(p.Technologies,
		model.Technology{Name: "hubspot", Category: "crm"},
		model.Technology{Name: "pipedrive", Category: "crm"},
	)
	d := NewDetector(DefaultRules(), nil)

	r := d.DetectFinancialLeaks(context.Background(), p, nil)

	assert.Len(t, r.Redundancy.Recommendations, 3)
	require.Len(t, r.Summary.PriorityRecommendations, 2)
	assert.Contains(t, r.Summary.PriorityRecommendations[0], "crms")
	assert.Empty(t, r.SaaSWaste.PatternsMatched, "no profile, no profile patterns")
}

func TestDetectFinancialLeaks_NoData(t *testing.T) {
	d := NewDetector(DefaultRules(), nil)

	r := d.DetectFinancialLeaks(context.Background(), &model.Prospect{Domain: "blank.example"}, icp.EcommerceDTC())

	s := r.Summary
	assert.Equal(t, 0.0, s.TotalMonthlyWaste)
	assert.Equal(t, 0.0, s.TotalAnnualWaste)
	assert.Equal(t, 0.0, s.TotalMonthlySavings)
	assert.Equal(t, 0.0, s.TotalAnnualSavings)
	assert.Equal(t, 0.0, s.TotalThreeYearSavings)
	assert.Equal(t, 0.0, s.ROIPercentage)
	assert.NotNil(t, s.PriorityRecommendations)
	assert.Empty(t, s.PriorityRecommendations)
}

func TestDetectFinancialLeaks_ProviderErrorDegrades(t *testing.T) {
	provider := &mockProvider{err: eris.New("analytics: quota exceeded")}
	d := NewDetector(DefaultRules(), provider)

	r := d.DetectFinancialLeaks(context.Background(), leakyProspect(), nil)

	assert.Contains(t, r.MetricsError, "quota exceeded")
	assert.True(t, r.Metrics.Empty())
	assert.False(t, r.PerformanceConversion.IssuesDetected)
	assert.InDelta(t, 400.0, r.Summary.TotalMonthlyWaste, 1e-9)
}

func TestMetricsProviderFunc(t *testing.T) {
	var got string
	f := MetricsProviderFunc(func(_ context.Context, p *model.Prospect) (model.Metrics, error) {
		got = p.Domain
		return model.Metrics{Performance: map[string]float64{"ttfb": 1}}, nil
	})

	m, err := f.FetchMetrics(context.Background(), &model.Prospect{Domain: "x.example"})
	require.NoError(t, err)
	assert.Equal(t, "x.example", got)
	assert.Equal(t, 1.0, m.Performance["ttfb"])
}

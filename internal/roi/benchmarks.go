package roi

import "github.com/sells-group/leadscore/internal/model"

// Benchmark industries.
const (
	IndustryEcommerce            = "ecommerce"
	IndustrySaaS                 = "saas"
	IndustryProfessionalServices = "professional_services"
	IndustryDefault              = "default"
)

// industryAliases maps prospect industry labels onto benchmark industries.
var industryAliases = map[string]string{
	"retail":             IndustryEcommerce,
	"consumer_goods":     IndustryEcommerce,
	"fashion":            IndustryEcommerce,
	"beauty":             IndustryEcommerce,
	"software":           IndustrySaaS,
	"technology":         IndustrySaaS,
	"fintech":            IndustrySaaS,
	"legal":              IndustryProfessionalServices,
	"accounting":         IndustryProfessionalServices,
	"consulting":         IndustryProfessionalServices,
	"financial_services": IndustryProfessionalServices,
	"marketing_agency":   IndustryProfessionalServices,
}

func builtinBenchmarks() map[string]CompetitorBenchmark {
	return map[string]CompetitorBenchmark{
		IndustryEcommerce: {
			Industry: IndustryEcommerce,
			Performance: map[string]float64{
				"load_time": 2.5, "ttfb": 0.5, "fcp": 1.6, "lcp": 2.4, "cls": 0.1,
				"performance_score": 75, "accessibility_score": 88,
			},
			Conversion: map[string]float64{
				"conversion_rate": 2.8, "add_to_cart_rate": 9, "checkout_completion": 48,
				"bounce_rate": 42, "cart_abandonment": 69,
			},
		},
		IndustrySaaS: {
			Industry: IndustrySaaS,
			Performance: map[string]float64{
				"load_time": 2.2, "ttfb": 0.4, "fcp": 1.4, "lcp": 2.2, "cls": 0.08,
				"performance_score": 82, "accessibility_score": 90,
			},
			Conversion: map[string]float64{
				"conversion_rate": 3.5, "bounce_rate": 48,
			},
		},
		IndustryProfessionalServices: {
			Industry: IndustryProfessionalServices,
			Performance: map[string]float64{
				"load_time": 3.0, "ttfb": 0.6, "lcp": 2.8,
				"performance_score": 70, "accessibility_score": 85,
			},
			Conversion: map[string]float64{
				"conversion_rate": 2.0, "bounce_rate": 55,
			},
		},
		IndustryDefault: {
			Industry: IndustryDefault,
			Performance: map[string]float64{
				"load_time": 3.0, "ttfb": 0.6, "fcp": 1.8, "lcp": 2.5, "cls": 0.1,
				"performance_score": 75, "accessibility_score": 85,
			},
			Conversion: map[string]float64{
				"conversion_rate": 2.5, "bounce_rate": 50,
			},
		},
	}
}

// BenchmarkFor returns the benchmark for an industry label, falling back to
// the default benchmark for unknown or empty labels.
func BenchmarkFor(industry string) *CompetitorBenchmark {
	all := builtinBenchmarks()
	key := model.NormalizeKey(industry)
	if alias, ok := industryAliases[key]; ok {
		key = alias
	}
	b, ok := all[key]
	if !ok {
		b = all[IndustryDefault]
	}
	return &b
}

// BenchmarkForProspect picks the benchmark for the prospect's industry.
func BenchmarkForProspect(p *model.Prospect) *CompetitorBenchmark {
	ind, _ := p.IndustryValue()
	return BenchmarkFor(ind)
}

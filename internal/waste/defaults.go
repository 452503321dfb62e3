package waste

// DefaultRedundancyPatterns returns the built-in redundancy rules. Each allows
// a single tool per category.
func DefaultRedundancyPatterns() []AppRedundancyPattern {
	return []AppRedundancyPattern{
		{
			Name:                  "multiple_email_platforms",
			Description:           "Several email service providers billed in parallel",
			Categories:            []string{"email_marketing", "email"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 250,
			Priority:              4,
		},
		{
			Name:                  "overlapping_analytics",
			Description:           "Multiple analytics suites collecting the same data",
			Categories:            []string{"analytics"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 150,
			Priority:              3,
		},
		{
			Name:                  "multiple_crms",
			Description:           "Customer records split across CRMs",
			Categories:            []string{"crm"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 400,
			Priority:              5,
		},
		{
			Name:                  "fragmented_support",
			Description:           "Help desk and live chat tools overlapping",
			Categories:            []string{"customer_support", "live_chat"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 180,
			Priority:              3,
		},
		{
			Name:                  "duplicate_project_management",
			Description:           "Teams tracking work in different tools",
			Categories:            []string{"project_management"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 120,
			Priority:              2,
		},
		{
			Name:                  "redundant_marketing_automation",
			Description:           "More than one marketing automation platform",
			Categories:            []string{"marketing_automation"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 300,
			Priority:              4,
		},
		{
			Name:                  "stacked_review_widgets",
			Description:           "Several review apps on the same storefront",
			Categories:            []string{"reviews"},
			MaxToolsPerCategory:   1,
			EstimatedMonthlyWaste: 90,
			Priority:              1,
		},
	}
}

// DefaultAnalyses returns the built-in storefront performance and conversion
// analysis. Timings are seconds except fid (milliseconds); rates are percents.
func DefaultAnalyses() []PerformanceConversionAnalysis {
	return []PerformanceConversionAnalysis{
		{
			Name:               "storefront_performance_conversion",
			Description:        "Slow pages and weak funnel steps leaking revenue",
			PerformanceMetrics: []string{"load_time", "ttfb", "fcp", "lcp", "cls", "fid", "performance_score", "accessibility_score"},
			ConversionMetrics:  []string{"conversion_rate", "add_to_cart_rate", "checkout_completion", "bounce_rate", "cart_abandonment"},
			BenchmarkData: BenchmarkData{
				Performance: map[string]float64{
					"load_time":           3.0,
					"ttfb":                0.6,
					"fcp":                 1.8,
					"lcp":                 2.5,
					"cls":                 0.1,
					"fid":                 100,
					"performance_score":   80,
					"accessibility_score": 90,
				},
				Conversion: map[string]float64{
					"conversion_rate":     2.5,
					"add_to_cart_rate":    8,
					"checkout_completion": 45,
					"bounce_rate":         45,
					"cart_abandonment":    70,
				},
			},
			EstimatedMonthlyWaste: 500,
		},
	}
}

// DefaultSavings returns the built-in verified savings templates.
func DefaultSavings() []VerifiedSavings {
	return []VerifiedSavings{
		{
			Name:               "saas_consolidation",
			SavingsType:        CostReduction,
			MonthlyAmount:      400,
			VerificationMethod: "invoice_audit",
			ConfidenceLevel:    0.8,
		},
		{
			Name:               "conversion_recovery",
			SavingsType:        RevenueIncrease,
			MonthlyAmount:      600,
			VerificationMethod: "ab_test",
			ConfidenceLevel:    0.6,
		},
		{
			Name:               "workflow_automation",
			SavingsType:        EfficiencyGain,
			MonthlyAmount:      250,
			VerificationMethod: "time_tracking",
			ConfidenceLevel:    0.7,
		},
	}
}

// DefaultRules returns all built-in rule sets.
func DefaultRules() Rules {
	return Rules{
		Redundancy: DefaultRedundancyPatterns(),
		Analyses:   DefaultAnalyses(),
		Savings:    DefaultSavings(),
	}
}

package icp

// Profile type tags.
const (
	TypeEcommerce = "ecommerce"
	TypeSaaS      = "saas"
	TypeServices  = "services"
)

func intPtr(v int) *int { return &v }

// DefaultFilters is the profile applied when a caller supplies none: a broad
// small-to-mid-market revenue band and no other constraints.
func DefaultFilters() *ICP {
	return &ICP{
		Name:                   "default",
		Type:                   "default",
		Description:            "Broad small and mid-market filter",
		MinRevenue:             100_000,
		MaxRevenue:             50_000_000,
		QualificationThreshold: 50,
	}
}

// EcommerceDTC targets direct-to-consumer brands on hosted commerce platforms.
func EcommerceDTC() *ICP {
	return &ICP{
		Name:         "ecommerce_dtc",
		Type:         TypeEcommerce,
		Description:  "Direct-to-consumer brands running a hosted storefront",
		MinRevenue:   500_000,
		MaxRevenue:   10_000_000,
		MinEmployees: intPtr(5),
		MaxEmployees: intPtr(200),
		Industries:   []string{"ecommerce", "retail", "consumer_goods", "fashion", "beauty"},
		Countries:    []string{"US", "CA", "GB", "AU"},
		TechnologyRequirements: []TechnologyRequirement{
			{Category: "ecommerce_platform", Tools: []string{"shopify", "shopify_plus", "bigcommerce", "woocommerce"}, Required: true, Weight: 1.5},
			{Category: "email_marketing", Tools: []string{"klaviyo", "mailchimp", "omnisend"}, Weight: 1.0},
			{Category: "analytics", Tools: []string{"google_analytics", "hotjar", "triple_whale"}, Weight: 0.8},
			{Category: "reviews", Tools: []string{"yotpo", "judge_me", "okendo"}, Weight: 0.5},
			{Category: "subscriptions", Tools: []string{"recharge", "bold_subscriptions"}, Weight: 0.5},
		},
		RevenueIndicators: []RevenueIndicator{
			{Keywords: []string{"free shipping", "subscribe and save"}, Multiplier: 1.2},
			{Keywords: []string{"wholesale", "retail partners"}, Multiplier: 1.5},
		},
		WastePatterns: []SaaSWastePattern{
			{
				Name:                  "duplicate_email_platforms",
				Description:           "More than one email service provider billed every month",
				DetectionPattern:      `^email_marketing:`,
				MinMatches:            2,
				EstimatedMonthlyWaste: 300,
				Priority:              4,
			},
			{
				Name:                  "stacked_review_apps",
				Description:           "Several review widgets installed on the storefront",
				DetectionPattern:      `^reviews:`,
				MinMatches:            2,
				EstimatedMonthlyWaste: 120,
				Priority:              2,
			},
			{
				Name:                  "legacy_page_builder",
				Description:           "Page builder apps that duplicate native theme features",
				DetectionPattern:      `:(pagefly|gempages|shogun)$`,
				EstimatedMonthlyWaste: 90,
				Priority:              1,
			},
		},
		QualificationThreshold: 60,
		AvgMonthlySaaSSpend:    2_500,
		AvgWastePercentage:     30,
		AvgRecoveryPercentage:  70,
	}
}

// B2BSaaS targets venture-stage software companies with a sales-led motion.
func B2BSaaS() *ICP {
	return &ICP{
		Name:         "b2b_saas",
		Type:         TypeSaaS,
		Description:  "Sales-led B2B software companies",
		MinRevenue:   1_000_000,
		MaxRevenue:   50_000_000,
		MinEmployees: intPtr(10),
		MaxEmployees: intPtr(500),
		Industries:   []string{"software", "saas", "technology", "fintech"},
		Countries:    []string{"US", "CA", "GB", "DE", "NL", "AU"},
		TechnologyRequirements: []TechnologyRequirement{
			{Category: "crm", Tools: []string{"salesforce", "hubspot", "pipedrive"}, Required: true, Weight: 1.5},
			{Category: "marketing_automation", Tools: []string{"hubspot", "marketo", "pardot"}, Weight: 1.0},
			{Category: "analytics", Tools: []string{"google_analytics", "mixpanel", "amplitude", "segment"}, Weight: 1.0},
			{Category: "customer_support", Tools: []string{"zendesk", "intercom", "freshdesk"}, Weight: 0.7},
			{Category: "project_management", Tools: []string{"jira", "asana", "linear"}, Weight: 0.5},
		},
		RevenueIndicators: []RevenueIndicator{
			{Keywords: []string{"enterprise plan", "soc 2"}, Multiplier: 1.5},
			{Keywords: []string{"book a demo", "request pricing"}, Multiplier: 1.2},
		},
		WastePatterns: []SaaSWastePattern{
			{
				Name:                  "overlapping_product_analytics",
				Description:           "Multiple product analytics suites tracking the same events",
				DetectionPattern:      `^analytics:(mixpanel|amplitude|heap|pendo)$`,
				MinMatches:            2,
				EstimatedMonthlyWaste: 800,
				Priority:              4,
			},
			{
				Name:                  "dual_crm",
				Description:           "Two CRMs in use across sales and marketing",
				DetectionPattern:      `^crm:`,
				MinMatches:            2,
				EstimatedMonthlyWaste: 1_200,
				Priority:              5,
			},
		},
		QualificationThreshold: 55,
		AvgMonthlySaaSSpend:    12_000,
		AvgWastePercentage:     25,
		AvgRecoveryPercentage:  60,
	}
}

// ProfessionalServices targets agencies and advisory firms.
func ProfessionalServices() *ICP {
	return &ICP{
		Name:         "professional_services",
		Type:         TypeServices,
		Description:  "Agencies, accounting, legal and consulting firms",
		MinRevenue:   250_000,
		MaxRevenue:   20_000_000,
		MinEmployees: intPtr(3),
		MaxEmployees: intPtr(250),
		Industries:   []string{"legal", "accounting", "consulting", "financial_services", "marketing_agency"},
		Countries:    []string{"US", "CA", "GB"},
		TechnologyRequirements: []TechnologyRequirement{
			{Category: "accounting", Tools: []string{"quickbooks", "xero", "freshbooks"}, Required: true, Weight: 1.2},
			{Category: "crm", Tools: []string{"hubspot", "salesforce", "zoho"}, Weight: 1.0},
			{Category: "scheduling", Tools: []string{"calendly", "acuity"}, Weight: 0.6},
			{Category: "document_management", Tools: []string{"docusign", "pandadoc", "dropbox"}, Weight: 0.6},
		},
		RevenueIndicators: []RevenueIndicator{
			{Keywords: []string{"retainer", "managed services"}, Multiplier: 1.3},
		},
		WastePatterns: []SaaSWastePattern{
			{
				Name:                  "duplicate_esignature",
				Description:           "Separate e-signature subscriptions per team",
				DetectionPattern:      `:(docusign|pandadoc|hellosign|adobe_sign)$`,
				MinMatches:            2,
				EstimatedMonthlyWaste: 150,
				Priority:              3,
			},
		},
		QualificationThreshold: 50,
		AvgMonthlySaaSSpend:    1_800,
		AvgWastePercentage:     20,
		AvgRecoveryPercentage:  65,
	}
}

// BuiltinProfiles returns fresh copies of every built-in profile.
func BuiltinProfiles() []*ICP {
	return []*ICP{EcommerceDTC(), B2BSaaS(), ProfessionalServices()}
}

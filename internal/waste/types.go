// Package waste detects redundant tooling, under-performance and verifiable
// savings for a prospect and rolls them into a financial leak report.
package waste

// AppRedundancyPattern flags a prospect that runs more tools in one category
// than the pattern allows.
type AppRedundancyPattern struct {
	Name                  string   `json:"name" yaml:"name"`
	Description           string   `json:"description" yaml:"description"`
	Categories            []string `json:"categories" yaml:"categories"`
	MaxToolsPerCategory   int      `json:"max_tools_per_category" yaml:"max_tools_per_category"`
	EstimatedMonthlyWaste float64  `json:"estimated_monthly_waste" yaml:"estimated_monthly_waste"`
	Priority              int      `json:"priority" yaml:"priority"`
}

// BenchmarkData holds metric thresholds by category.
type BenchmarkData struct {
	Performance map[string]float64 `json:"performance" yaml:"performance"`
	Conversion  map[string]float64 `json:"conversion" yaml:"conversion"`
}

// PerformanceConversionAnalysis compares observed site metrics against
// benchmarks. An empty metric list checks every benchmarked metric of that
// category.
type PerformanceConversionAnalysis struct {
	Name                  string        `json:"name" yaml:"name"`
	Description           string        `json:"description" yaml:"description"`
	PerformanceMetrics    []string      `json:"performance_metrics" yaml:"performance_metrics"`
	ConversionMetrics     []string      `json:"conversion_metrics" yaml:"conversion_metrics"`
	BenchmarkData         BenchmarkData `json:"benchmark_data" yaml:"benchmark_data"`
	EstimatedMonthlyWaste float64       `json:"estimated_monthly_waste" yaml:"estimated_monthly_waste"`
}

// SavingsType selects how a savings template scales with the prospect.
type SavingsType string

const (
	// CostReduction scales with employee count.
	CostReduction SavingsType = "cost_reduction"
	// RevenueIncrease scales with revenue.
	RevenueIncrease SavingsType = "revenue_increase"
	// EfficiencyGain is not scaled.
	EfficiencyGain SavingsType = "efficiency_gain"
)

// VerifiedSavings is a savings template tied to a verification method.
type VerifiedSavings struct {
	Name               string      `json:"name" yaml:"name"`
	SavingsType        SavingsType `json:"savings_type" yaml:"savings_type"`
	MonthlyAmount      float64     `json:"monthly_amount" yaml:"monthly_amount"`
	VerificationMethod string      `json:"verification_method" yaml:"verification_method"`
	ConfidenceLevel    float64     `json:"confidence_level" yaml:"confidence_level"`
}

// Rules bundles the rule sets a Detector evaluates.
type Rules struct {
	Redundancy []AppRedundancyPattern          `json:"redundancy" yaml:"redundancy"`
	Analyses   []PerformanceConversionAnalysis `json:"analyses" yaml:"analyses"`
	Savings    []VerifiedSavings               `json:"savings" yaml:"savings"`
}

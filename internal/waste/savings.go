package waste

import (
	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

// SavingsCalculation is one evaluated VerifiedSavings template. Applied is
// false when the prospect lacks the firmographic field the template scales
// with; such calculations contribute nothing.
type SavingsCalculation struct {
	Name               string      `json:"name"`
	SavingsType        SavingsType `json:"savings_type"`
	VerificationMethod string      `json:"verification_method"`
	Applied            bool        `json:"applied"`
	BaseMonthlyAmount  float64     `json:"base_monthly_amount"`
	AdjustmentFactor   float64     `json:"adjustment_factor"`
	ConfidenceLevel    float64     `json:"confidence_level"`
	MonthlySavings     float64     `json:"monthly_savings"`
	AnnualSavings      float64     `json:"annual_savings"`
	ThreeYearSavings   float64     `json:"three_year_savings"`
}

// SavingsResult is the output of CalculateVerifiedSavings.
type SavingsResult struct {
	Calculations          []SavingsCalculation `json:"calculations"`
	TotalMonthlySavings   float64              `json:"total_monthly_savings"`
	TotalAnnualSavings    float64              `json:"total_annual_savings"`
	TotalThreeYearSavings float64              `json:"total_three_year_savings"`
	ROIPercentage         float64              `json:"roi_percentage"`
}

// CalculateVerifiedSavings scales each template by the prospect's size or
// revenue bucket and discounts it by its confidence level.
func CalculateVerifiedSavings(p *model.Prospect, templates []VerifiedSavings) SavingsResult {
	res := SavingsResult{Calculations: make([]SavingsCalculation, 0, len(templates))}

	for _, t := range templates {
		calc := SavingsCalculation{
			Name:               t.Name,
			SavingsType:        t.SavingsType,
			VerificationMethod: t.VerificationMethod,
			BaseMonthlyAmount:  estimate.NonNegative(t.MonthlyAmount),
			ConfidenceLevel:    estimate.Clamp(t.ConfidenceLevel, 0, 1),
		}

		calc.AdjustmentFactor, calc.Applied = adjustment(p, t.SavingsType)
		if calc.Applied {
			calc.MonthlySavings = calc.BaseMonthlyAmount * calc.AdjustmentFactor * calc.ConfidenceLevel
			calc.AnnualSavings = calc.MonthlySavings * 12
			calc.ThreeYearSavings = calc.AnnualSavings * 3
		}

		res.TotalMonthlySavings += calc.MonthlySavings
		res.TotalAnnualSavings += calc.AnnualSavings
		res.TotalThreeYearSavings += calc.ThreeYearSavings
		res.Calculations = append(res.Calculations, calc)
	}

	res.ROIPercentage = estimate.ROIPercentage(res.TotalAnnualSavings, p)
	return res
}

// adjustment returns the scaling factor for a savings type and whether the
// prospect carries the data it needs.
func adjustment(p *model.Prospect, typ SavingsType) (float64, bool) {
	emp, hasEmp := p.EmployeeValue()
	rev, hasRev := p.RevenueValue()

	switch typ {
	case CostReduction:
		if !hasEmp {
			return 0, false
		}
		return estimate.SizeFactor(emp), true
	case RevenueIncrease:
		if !hasRev {
			return 0, false
		}
		return estimate.RevenueFactor(rev), true
	default:
		return 1, hasEmp || hasRev
	}
}

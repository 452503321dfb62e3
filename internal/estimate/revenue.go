// Package estimate provides the company-size and revenue scaling factors shared
// by waste savings and ROI projection.
package estimate

import (
	"fmt"
	"math"

	"github.com/sells-group/leadscore/internal/model"
)

// bucket maps an upper bound (exclusive) to a multiplier.
type bucket struct {
	below  float64
	factor float64
}

// Employee-count buckets: <10, <50, <200, 200+.
var sizeBuckets = []bucket{
	{10, 0.5},
	{50, 1.0},
	{200, 2.0},
}

const sizeFactorMax = 3.0

// Annual revenue buckets: <$500K, <$2M, <$10M, $10M+.
var revenueBuckets = []bucket{
	{500_000, 0.5},
	{2_000_000, 1.0},
	{10_000_000, 2.0},
}

const revenueFactorMax = 3.0

// SizeFactor returns the multiplier for a company with the given headcount.
func SizeFactor(employees int) float64 {
	return lookup(sizeBuckets, float64(employees), sizeFactorMax)
}

// RevenueFactor returns the multiplier for a company with the given annual revenue.
func RevenueFactor(revenue float64) float64 {
	return lookup(revenueBuckets, revenue, revenueFactorMax)
}

// ProspectScale returns SizeFactor x RevenueFactor for a prospect. An unknown
// employee count or revenue contributes a neutral 1.0.
func ProspectScale(p *model.Prospect) float64 {
	scale := 1.0
	if emp, ok := p.EmployeeValue(); ok {
		scale *= SizeFactor(emp)
	}
	if rev, ok := p.RevenueValue(); ok {
		scale *= RevenueFactor(rev)
	}
	return scale
}

// ROIPercentage returns amount as a percentage of revenue, or 0 when revenue
// is unknown or not positive.
func ROIPercentage(amount float64, p *model.Prospect) float64 {
	rev, ok := p.RevenueValue()
	if !ok || rev <= 0 {
		return 0
	}
	return (amount / rev) * 100
}

func lookup(buckets []bucket, v, top float64) float64 {
	for _, b := range buckets {
		if v < b.below {
			return b.factor
		}
	}
	return top
}

// NonNegative clamps money figures at zero.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatRevenue formats a dollar amount in human-readable form.
func FormatRevenue(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.0fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}

package metrics

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/waste"
)

// RateLimited throttles calls to an analytics source shared by concurrent
// evaluations.
type RateLimited struct {
	next    waste.MetricsProvider
	limiter *rate.Limiter
}

// NewRateLimited allows perSec fetches per second with the given burst.
func NewRateLimited(next waste.MetricsProvider, perSec float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// FetchMetrics waits for a token, then delegates.
func (r *RateLimited) FetchMetrics(ctx context.Context, p *model.Prospect) (model.Metrics, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return model.Metrics{}, eris.Wrap(err, "metrics: rate limit wait")
	}
	return r.next.FetchMetrics(ctx, p)
}

package waste

import (
	"context"

	"github.com/sells-group/leadscore/internal/model"
)

// MetricsProvider supplies observed performance and conversion metrics for a
// prospect, typically from an analytics source.
type MetricsProvider interface {
	FetchMetrics(ctx context.Context, p *model.Prospect) (model.Metrics, error)
}

// MetricsProviderFunc adapts a function to MetricsProvider.
type MetricsProviderFunc func(ctx context.Context, p *model.Prospect) (model.Metrics, error)

// FetchMetrics calls f.
func (f MetricsProviderFunc) FetchMetrics(ctx context.Context, p *model.Prospect) (model.Metrics, error) {
	return f(ctx, p)
}

// noMetrics reports nothing for every prospect.
var noMetrics = MetricsProviderFunc(func(context.Context, *model.Prospect) (model.Metrics, error) {
	return model.Metrics{}, nil
})

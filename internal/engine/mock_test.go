package engine

import (
	"context"
	"sync/atomic"

	"github.com/sells-group/leadscore/internal/model"
)

// mockProvider implements waste.MetricsProvider for testing.
type mockProvider struct {
	metrics model.Metrics
	calls   atomic.Int64
	block   chan struct{}
}

func (m *mockProvider) FetchMetrics(ctx context.Context, _ *model.Prospect) (model.Metrics, error) {
	m.calls.Add(1)
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return model.Metrics{}, ctx.Err()
		}
	}
	return m.metrics, nil
}

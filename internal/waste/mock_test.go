package waste

import (
	"context"
	"sync"

	"github.com/sells-group/leadscore/internal/model"
)

// mockProvider implements MetricsProvider for testing.
type mockProvider struct {
	mu      sync.Mutex
	metrics map[string]model.Metrics
	err     error
	calls   []string
}

func (m *mockProvider) FetchMetrics(_ context.Context, p *model.Prospect) (model.Metrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, p.Domain)
	if m.err != nil {
		return model.Metrics{}, m.err
	}
	return m.metrics[p.Domain], nil
}

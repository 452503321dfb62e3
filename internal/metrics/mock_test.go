package metrics

import (
	"context"
	"sync/atomic"

	"github.com/sells-group/leadscore/internal/model"
)

// flakyProvider fails the first failures calls with err.
type flakyProvider struct {
	failures int32
	err      error
	calls    atomic.Int32
	metrics  model.Metrics
}

func (f *flakyProvider) FetchMetrics(_ context.Context, _ *model.Prospect) (model.Metrics, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return model.Metrics{}, f.err
	}
	return f.metrics, nil
}

// Package metrics provides the performance and conversion metric sources used
// by leak detection.
package metrics

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscore/internal/config"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/waste"
)

// Noop reports no metrics for every prospect.
type Noop struct{}

// FetchMetrics returns empty metrics.
func (Noop) FetchMetrics(context.Context, *model.Prospect) (model.Metrics, error) {
	return model.Metrics{}, nil
}

// New builds the provider selected by cfg and applies Wrap. The built-in
// sources never fail transiently, so for them the retry layer is inert.
func New(cfg config.MetricsConfig) (waste.MetricsProvider, error) {
	var base waste.MetricsProvider
	switch cfg.Source {
	case "", config.MetricsSourceNone:
		return Noop{}, nil
	case config.MetricsSourceRandom:
		base = NewRandom(cfg.Seed)
	case config.MetricsSourceFile:
		s, err := LoadStatic(cfg.File)
		if err != nil {
			return nil, err
		}
		base = s
	default:
		return nil, eris.Errorf("metrics: unknown source %q", cfg.Source)
	}
	return Wrap(base, cfg), nil
}

// Wrap layers retries (when cfg.RetryAttempts > 1) and, when a rate is set, a
// rate limiter around base. It is the entry point for live analytics sources
// that report retryable failures as TransientError.
func Wrap(base waste.MetricsProvider, cfg config.MetricsConfig) waste.MetricsProvider {
	p := base
	if cfg.RetryAttempts > 1 {
		p = NewRetrying(p, RetryConfig{
			MaxAttempts:    cfg.RetryAttempts,
			InitialBackoff: time.Duration(cfg.RetryBackoffMs) * time.Millisecond,
		})
	}
	if cfg.RatePerSec > 0 {
		p = NewRateLimited(p, cfg.RatePerSec, cfg.Burst)
	}
	return p
}

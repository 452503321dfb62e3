package metrics

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/waste"
)

// TransientError marks a fetch failure that is safe to retry, such as a
// throttled or briefly unavailable analytics API.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as retryable.
func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

// IsTransient reports whether err or any error in its chain is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// RetryConfig controls retries with exponential backoff and jitter.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first. Default: 3.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry. Default: 250ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay. Default: 5s.
	MaxBackoff time.Duration

	// JitterFraction adds up to ±fraction of the delay. Default: 0.25.
	JitterFraction float64
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 250 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Second
	}
	if c.JitterFraction <= 0 {
		c.JitterFraction = 0.25
	}
	return c
}

// Retrying retries transient fetch failures. Other errors and context
// cancellation return immediately.
type Retrying struct {
	next waste.MetricsProvider
	cfg  RetryConfig
}

// NewRetrying wraps next with retries.
func NewRetrying(next waste.MetricsProvider, cfg RetryConfig) *Retrying {
	return &Retrying{next: next, cfg: cfg.withDefaults()}
}

// FetchMetrics delegates, retrying transient errors.
func (r *Retrying) FetchMetrics(ctx context.Context, p *model.Prospect) (model.Metrics, error) {
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		m, err := r.next.FetchMetrics(ctx, p)
		if err == nil {
			return m, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		zap.L().Debug("metrics: retrying fetch",
			zap.String("domain", p.Domain),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(r.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.Metrics{}, lastErr
		case <-timer.C:
		}
	}
	return model.Metrics{}, lastErr
}

func (r *Retrying) backoff(attempt int) time.Duration {
	delay := float64(r.cfg.InitialBackoff) * math.Pow(2, float64(attempt))
	delay = math.Min(delay, float64(r.cfg.MaxBackoff))
	delay += (rand.Float64()*2 - 1) * delay * r.cfg.JitterFraction
	return time.Duration(math.Max(delay, 0))
}

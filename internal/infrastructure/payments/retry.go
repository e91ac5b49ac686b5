package payments

import (
	"context"
	"math"
	"time"

	"quadra_billing/internal/infrastructure/logger"

	"github.com/sirupsen/logrus"
)

// RetryPolicy bounds the additional attempts of a single logical call.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, InitialDelay: 500 * time.Millisecond, Multiplier: 2}
}

// Delay returns the wait before retry number n (1-based): InitialDelay*Multiplier^(n-1).
func (p RetryPolicy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	return time.Duration(float64(p.InitialDelay) * math.Pow(mult, float64(n-1)))
}

// Retrier runs a call with exponential backoff. Sleeps block the caller and
// end early when ctx is done.
type Retrier struct {
	policy RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
	log    *logrus.Entry
}

func NewRetrier(policy RetryPolicy, log logrus.FieldLogger) *Retrier {
	return &Retrier{policy: policy, sleep: sleepCtx, log: logger.Component(log, "payment.gateway.retry")}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or the
// retry budget is spent. The returned error is always a *GatewayError.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		ge, ok := AsGatewayError(err)
		if !ok {
			ge = &GatewayError{Op: op, Kind: KindUnknown, Err: err}
		}
		if ge.Op == "" {
			ge.Op = op
		}
		ge.Attempts = attempt

		if !ge.Retryable || attempt > r.policy.MaxRetries {
			return ge
		}

		delay := r.policy.Delay(attempt)
		r.log.WithFields(logrus.Fields{
			"op":          op,
			"attempt":     attempt,
			"http_status": ge.HTTPStatus,
			"timeout":     ge.Timeout,
			"delay_ms":    delay.Milliseconds(),
		}).Warn("retrying provider call")

		if serr := r.sleep(ctx, delay); serr != nil {
			return ge
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

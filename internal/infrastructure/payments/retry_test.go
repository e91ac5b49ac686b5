package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"quadra_billing/internal/infrastructure/logger"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.Delay(1) != 500*time.Millisecond || p.Delay(2) != time.Second || p.Delay(3) != 2*time.Second {
		t.Fatalf("unexpected backoff %s %s %s", p.Delay(1), p.Delay(2), p.Delay(3))
	}
}

func TestRetrier_Do(t *testing.T) {
	newRetrier := func(max int) (*Retrier, *[]time.Duration) {
		var slept []time.Duration
		r := NewRetrier(RetryPolicy{MaxRetries: max, InitialDelay: 10 * time.Millisecond, Multiplier: 2}, logger.Discard())
		r.sleep = func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}
		return r, &slept
	}

	t.Run("backs off exponentially", func(t *testing.T) {
		r, slept := newRetrier(2)
		calls := 0
		err := r.Do(context.Background(), "op", func(context.Context) error {
			calls++
			return NewStatusError("op", 503, nil)
		})
		if calls != 3 {
			t.Fatalf("expected 3 calls, got %d", calls)
		}
		if len(*slept) != 2 || (*slept)[0] != 10*time.Millisecond || (*slept)[1] != 20*time.Millisecond {
			t.Fatalf("unexpected sleeps %v", *slept)
		}
		ge, ok := AsGatewayError(err)
		if !ok || ge.Attempts != 3 {
			t.Fatalf("expected attempts annotated, got %v", err)
		}
	})

	t.Run("plain errors are wrapped and not retried", func(t *testing.T) {
		r, _ := newRetrier(2)
		calls := 0
		cause := errors.New("encode")
		err := r.Do(context.Background(), "op", func(context.Context) error {
			calls++
			return cause
		})
		if calls != 1 || !errors.Is(err, cause) {
			t.Fatalf("expected single call wrapping cause, got %d %v", calls, err)
		}
		if ge, _ := AsGatewayError(err); ge.Kind != KindUnknown || ge.Op != "op" {
			t.Fatalf("unexpected wrap %+v", ge)
		}
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		r := NewRetrier(RetryPolicy{MaxRetries: 5, InitialDelay: time.Hour, Multiplier: 2}, logger.Discard())
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := r.Do(ctx, "op", func(context.Context) error {
			calls++
			cancel()
			return NewStatusError("op", 502, nil)
		})
		if calls != 1 || !IsTransient(err) {
			t.Fatalf("expected to stop after cancellation, got %d calls err=%v", calls, err)
		}
	})
}

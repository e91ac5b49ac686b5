package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachable points at a closed port so every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewRedisClient(ctx, "127.0.0.1:1"); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestEventDeduper_PropagatesErrors(t *testing.T) {
	d := NewEventDeduper(unreachable())
	if _, err := d.Seen(context.Background(), "webhook:processed:PAYMENT_CONFIRMED:pay_1"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if err := d.Mark(context.Background(), "k", time.Minute); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}

func TestLocker_UnreachableIsNotLockNotObtained(t *testing.T) {
	l := NewLocker(unreachable())
	release, err := l.Obtain(context.Background(), "lock:payment:pay_1", time.Second)
	if err == nil || release != nil {
		t.Fatalf("expected error and nil release, got %v", err)
	}
}

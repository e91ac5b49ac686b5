package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quadra_billing/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings once. Callers treat a failure as
// "run without Redis".
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// EventDeduper remembers processed webhook events.
type EventDeduper struct {
	rdb *redis.Client
}

var _ interfaces.IEventDeduper = (*EventDeduper)(nil)

func NewEventDeduper(rdb *redis.Client) *EventDeduper {
	return &EventDeduper{rdb: rdb}
}

func (d *EventDeduper) Seen(ctx context.Context, key string) (bool, error) {
	n, err := d.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *EventDeduper) Mark(ctx context.Context, key string, ttl time.Duration) error {
	return d.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err()
}

// Locker hands out short-lived distributed locks.
type Locker struct {
	client *redislock.Client
}

var _ interfaces.ILocker = (*Locker)(nil)

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, interfaces.ErrLockNotObtained
	}
	if err != nil {
		return nil, err
	}
	return func() {
		// The lock may have expired already; nothing to do then.
		_ = lock.Release(context.Background())
	}, nil
}

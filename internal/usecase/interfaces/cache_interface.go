package interfaces

import (
	"context"
	"errors"
	"time"
)

var ErrLockNotObtained = errors.New("lock not obtained")

// IEventDeduper remembers webhook events that were already processed.
type IEventDeduper interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string, ttl time.Duration) error
}

// ILocker obtains short-lived distributed locks.
type ILocker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

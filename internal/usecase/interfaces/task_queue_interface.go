package interfaces

import "context"

// ITaskQueue runs detached work on a bounded worker pool.
// Submit never blocks; it fails when the queue is full or closed.
type ITaskQueue interface {
	Submit(name string, fn func(ctx context.Context) error) error
}

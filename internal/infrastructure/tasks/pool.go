package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull  = errors.New("task queue full")
	ErrPoolClosed = errors.New("task pool closed")
)

type Options struct {
	Workers   int
	QueueSize int
	// Timeout bounds a single task. Zero disables it.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Pool runs detached work on a fixed set of workers fed by a bounded queue.
// Submit never blocks the caller.
type Pool struct {
	queue   chan task
	timeout time.Duration
	log     *logrus.Entry

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc
}

var _ interfaces.ITaskQueue = (*Pool)(nil)

func NewPool(opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:   make(chan task, opts.QueueSize),
		timeout: opts.Timeout,
		log:     logger.Component(opts.Logger, "tasks"),
		baseCtx: ctx,
		cancel:  cancel,
	}
	p.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) Submit(name string, fn func(ctx context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queue <- task{name: name, fn: fn}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued tasks to finish. When ctx
// expires first, running tasks are cancelled and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		p.run(t)
	}
}

func (p *Pool) run(t task) {
	ctx := p.baseCtx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	log := p.log.WithField("task", t.name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("task panicked")
		}
	}()
	if err := t.fn(ctx); err != nil {
		log.WithError(err).WithField("elapsed_ms", time.Since(start).Milliseconds()).Warn("task failed")
		return
	}
	log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Debug("task done")
}

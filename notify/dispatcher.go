package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher runs side effects on detached goroutines. The caller never
// waits for them; failures only reach the log.
type Dispatcher struct {
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(log *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{log: log.With(zap.String("component", "dispatcher")), timeout: timeout}
}

// Go schedules fn with its own timeout context, detached from the request.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("task panicked", zap.String("task", name), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			d.log.Warn("task failed", zap.String("task", name), zap.Error(err), zap.Duration("took", time.Since(start)))
			return
		}
		d.log.Debug("task done", zap.String("task", name), zap.Duration("took", time.Since(start)))
	}()
}

// Wait blocks until every scheduled task has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

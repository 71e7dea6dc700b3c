package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDispatcher(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), time.Second)

	var ran int32
	d.Go("ok", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	d.Go("fails", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	})
	d.Go("panics", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		panic("boom")
	})
	d.Go("deadline", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("expected a deadline on the task context")
		}
		atomic.AddInt32(&ran, 1)
		return nil
	})

	d.Wait()
	if n := atomic.LoadInt32(&ran); n != 4 {
		t.Fatalf("expected 4 tasks to run, got %d", n)
	}
}

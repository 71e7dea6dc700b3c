package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakePurger struct {
	cutoff time.Time
	rows   int64
	err    error
}

func (f *fakePurger) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.rows, f.err
}

type fakeSyncer struct{ calls int }

func (f *fakeSyncer) SyncAvailability(context.Context) (int64, int64, error) {
	f.calls++
	return 1, 0, nil
}

func TestPurgeLogsUsesRetention(t *testing.T) {
	activity := &fakePurger{rows: 3}
	api := &fakePurger{err: errors.New("boom")}
	s := New(zap.NewNop(), 7, nil, map[string]Purger{"activity_logs": activity, "api_logs": api})

	before := time.Now().Add(-7 * 24 * time.Hour)
	s.PurgeLogs()
	after := time.Now().Add(-7 * 24 * time.Hour)

	for name, p := range map[string]*fakePurger{"activity": activity, "api": api} {
		if p.cutoff.Before(before) || p.cutoff.After(after) {
			t.Fatalf("%s cutoff %s outside [%s, %s]", name, p.cutoff, before, after)
		}
	}
}

func TestSyncAvailability(t *testing.T) {
	stock := &fakeSyncer{}
	s := New(zap.NewNop(), 0, stock, nil)
	s.SyncAvailability()
	if stock.calls != 1 {
		t.Fatalf("expected one sync, got %d", stock.calls)
	}
	if s.retention != 30*24*time.Hour {
		t.Fatalf("expected default retention, got %s", s.retention)
	}
}

func TestStartStop(t *testing.T) {
	s := New(zap.NewNop(), 30, &fakeSyncer{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}

package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger deletes rows older than cutoff and reports how many went away.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

type AvailabilitySyncer interface {
	SyncAvailability(ctx context.Context) (disabled, enabled int64, err error)
}

type Scheduler struct {
	log       *zap.Logger
	retention time.Duration
	purgers   map[string]Purger
	stock     AvailabilitySyncer

	daily    gocron.Scheduler
	interval *cron.Cron
}

func New(log *zap.Logger, retentionDays int, stock AvailabilitySyncer, purgers map[string]Purger) *Scheduler {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Scheduler{
		log:       log.With(zap.String("component", "scheduler")),
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		purgers:   purgers,
		stock:     stock,
	}
}

// Start registers the daily log purge (03:00 local) and the five minute
// product availability sync.
func (s *Scheduler) Start() error {
	daily, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return err
	}
	_, err = daily.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(s.PurgeLogs),
	)
	if err != nil {
		return err
	}

	interval := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := interval.AddFunc("@every 5m", s.SyncAvailability); err != nil {
		_ = daily.Shutdown()
		return err
	}

	s.daily = daily
	s.interval = interval
	daily.Start()
	interval.Start()
	s.log.Info("schedulers started", zap.Duration("log_retention", s.retention))
	return nil
}

func (s *Scheduler) PurgeLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	for name, p := range s.purgers {
		n, err := p.Purge(ctx, cutoff)
		if err != nil {
			s.log.Error("purge failed", zap.String("table", name), zap.Error(err))
			continue
		}
		if n > 0 {
			s.log.Info("old rows purged", zap.String("table", name), zap.Int64("rows", n))
		}
	}
}

func (s *Scheduler) SyncAvailability() {
	if s.stock == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	disabled, enabled, err := s.stock.SyncAvailability(ctx)
	if err != nil {
		s.log.Error("availability sync failed", zap.Error(err))
		return
	}
	if disabled > 0 || enabled > 0 {
		s.log.Info("product availability synced", zap.Int64("disabled", disabled), zap.Int64("enabled", enabled))
	}
}

func (s *Scheduler) Stop() {
	if s.interval != nil {
		<-s.interval.Stop().Done()
	}
	if s.daily != nil {
		if err := s.daily.Shutdown(); err != nil {
			s.log.Warn("daily scheduler shutdown", zap.Error(err))
		}
	}
}

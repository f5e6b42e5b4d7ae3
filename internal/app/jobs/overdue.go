// Package jobs runs the scheduled maintenance work. The only job today is
// the overdue sweep: it reports active rentals past their return date. It
// observes and logs; whether an overdue rental stops counting as active is
// an open business question, so the sweep deliberately mutates nothing.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/storage"
	cfgpkg "github.com/reelhouse/rental/pkg/config"
)

type Sweeper struct {
	store storage.Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewSweeper(store storage.Store, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{store: store, log: log, now: time.Now}
}

// SweepOverdue logs the number of active rentals past their return date
// and returns it.
func (s *Sweeper) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.store.Rents().CountOverdue(ctx, s.now())
	if err != nil {
		s.log.Errorw("overdue sweep failed", "err", err)
		return 0, err
	}
	if n > 0 {
		s.log.Warnw("overdue rentals outstanding", "count", n)
	} else {
		s.log.Infow("no overdue rentals")
	}
	return n, nil
}

// runScheduler registers the sweep on the configured cron spec (seconds
// precision, UTC) and ties the scheduler to the fx lifecycle.
func runScheduler(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, sweeper *Sweeper) error {
	spec := cfg.Jobs.OverdueSweep
	if spec == "" {
		log.Infow("overdue sweep disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC), cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() {
		_, _ = sweeper.SweepOverdue(context.Background())
	}); err != nil {
		log.Errorw("failed to register overdue sweep", "spec", spec, "err", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			c.Start()
			log.Infow("scheduler started", "overdue_sweep", spec)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := c.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

var Module = fx.Options(
	fx.Provide(NewSweeper),
	fx.Invoke(runScheduler),
)

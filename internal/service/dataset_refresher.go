package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reloadTimeout = time.Minute

// DatasetRefresher reloads the dataset on a cron schedule.
// A failed reload is logged and the previous snapshot keeps serving.
type DatasetRefresher struct {
	reloader DatasetReloader
	schedule string
	logger   *zap.Logger
}

func NewDatasetRefresher(reloader DatasetReloader, schedule string, logger *zap.Logger) *DatasetRefresher {
	return &DatasetRefresher{
		reloader: reloader,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the scheduler until ctx is done.
func (r *DatasetRefresher) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(r.schedule, func() { r.refresh(ctx) }); err != nil {
		return fmt.Errorf("add refresh job %q: %w", r.schedule, err)
	}

	c.Start()
	r.logger.Info("dataset refresher started", zap.String("schedule", r.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	r.logger.Info("dataset refresher stopped")
	return nil
}

func (r *DatasetRefresher) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	start := time.Now()
	if err := r.reloader.Reload(ctx); err != nil {
		r.logger.Error("failed to reload dataset", zap.Error(err))
		return
	}
	r.logger.Info("dataset reloaded", zap.Duration("took", time.Since(start)))
}

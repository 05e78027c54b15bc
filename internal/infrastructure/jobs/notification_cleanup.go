package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"hackmate.backend/internal/domain/repositories"
	"hackmate.backend/pkg/logger"
)

// NotificationCleanupJob periodically deletes read notifications older
// than the retention window.
type NotificationCleanupJob struct {
	repo      repositories.NotificationRepository
	interval  time.Duration
	retention time.Duration
	stop      chan struct{}
}

func NewNotificationCleanupJob(repo repositories.NotificationRepository, interval, retention time.Duration) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		repo:      repo,
		interval:  interval,
		retention: retention,
		stop:      make(chan struct{}),
	}
}

func (j *NotificationCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting notification cleanup job",
		zap.Duration("interval", j.interval),
		zap.Duration("retention", j.retention),
	)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "notification cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "notification cleanup job stopped")
			return
		case <-ticker.C:
			j.cleanup(ctx)
		}
	}
}

func (j *NotificationCleanupJob) Stop() {
	close(j.stop)
}

func (j *NotificationCleanupJob) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-j.retention)

	deleted, err := j.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		logger.Error(ctx, "notification cleanup failed", zap.Error(err))
		return
	}

	if deleted > 0 {
		logger.Info(ctx, "deleted old read notifications", zap.Int64("count", deleted))
	}
}

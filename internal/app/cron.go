package app

import (
	"context"
	"fmt"
	"time"

	pkgcron "github.com/skykintech/skyblog-core/internal/pkg/cron"
)

const notificationRetentionDays = 90

// registerCronJobs registers all scheduled background jobs. Views and
// likes are never pruned; only read notifications expire.
func (a *App) registerCronJobs() {
	cronLogger := a.logger.Named("CronService")

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_notifications",
		Description: "Delete read notifications older than 90 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := a.notify.PruneRead(notificationRetentionDays)
			if err != nil {
				return err
			}
			cronLogger.Info(fmt.Sprintf("pruned %d read notifications", deleted))
			return nil
		},
	})
}

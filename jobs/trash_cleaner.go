package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lexvault/services"
)

// StartTrashCleanupJob runs the retention sweep on a ticker, hard
// deleting documents that have sat in the trash past the configured
// retention. Stop the job by cancelling the context.
func StartTrashCleanupJob(ctx context.Context, trashService *services.TrashService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				purged, err := trashService.PurgeExpired(runCtx)
				cancel()
				if err != nil {
					logger.Error("trash cleanup run failed", zap.Error(err))
					continue
				}
				logger.Info("trash cleanup run completed", zap.Int64("purged", purged))
			case <-ctx.Done():
				return
			}
		}
	}()
}

package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartHealthMonitor pings the database every interval and logs pool
// statistics until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, db *sql.DB, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, interval)
				err := db.PingContext(pingCtx)
				cancel()
				if err != nil {
					log.Error("database ping failed", zap.Error(err))
					continue
				}
				s := db.Stats()
				log.Debug("database pool",
					zap.Int("open", s.OpenConnections),
					zap.Int("in_use", s.InUse),
					zap.Int("idle", s.Idle),
					zap.Int64("wait_count", s.WaitCount),
					zap.Duration("wait_duration", s.WaitDuration),
				)
			}
		}
	}()
}

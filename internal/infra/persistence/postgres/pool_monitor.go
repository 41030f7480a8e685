package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	poolMonitorInterval  = 5 * time.Second
	poolWaitWarnDuration = 50 * time.Millisecond
)

// poolMonitor reports connections that had to wait for a free slot. The
// SQLite pool holds a single connection, so short waits there are normal and
// only logged at debug.
type poolMonitor struct {
	logger    *slog.Logger
	stats     func() sql.DBStats
	interval  time.Duration
	warnAfter time.Duration
	prev      sql.DBStats
}

func newPoolMonitor(logger *slog.Logger, sqlDB *sql.DB, store string) *poolMonitor {
	if logger == nil {
		logger = slog.Default()
	}

	return &poolMonitor{
		logger:    logger.With(slog.String("store", store)),
		stats:     sqlDB.Stats,
		interval:  poolMonitorInterval,
		warnAfter: poolWaitWarnDuration,
	}
}

func (m *poolMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.prev = m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.observe(ctx, m.stats())
		}
	}
}

// observe compares cur with the previous sample and logs new waits.
func (m *poolMonitor) observe(ctx context.Context, cur sql.DBStats) {
	waits := cur.WaitCount - m.prev.WaitCount
	waited := cur.WaitDuration - m.prev.WaitDuration
	m.prev = cur

	if waits <= 0 {
		return
	}

	level := slog.LevelDebug
	if waited/time.Duration(waits) >= m.warnAfter {
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(ctx, level, "Connection pool waits",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("in_use", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("max_open", cur.MaxOpenConnections),
	)
}

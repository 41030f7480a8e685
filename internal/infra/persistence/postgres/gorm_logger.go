package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"postboard/config"
	deliverycontext "postboard/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormLogger sends GORM output to slog. Lines go to the request-scoped logger
// when the query runs under a request context, so they carry request_id.
type gormLogger struct {
	fallback      *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	if base == nil {
		base = slog.Default()
	}

	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormLogger{
		fallback:      base.With(slog.String("component", "gorm")),
		level:         level,
		slowThreshold: defaultSlowQueryThreshold,
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold {
		return
	}

	l.log(ctx).Log(ctx, level, fmt.Sprintf(msg, args...))
}

// Trace logs one executed statement. Misses and constraint hits are outcomes
// the repositories translate, so they stay at debug.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra []slog.Attr
	)

	switch {
	case err != nil && isExpectedQueryError(err):
		if l.level < logger.Info {
			return
		}
		level, msg = slog.LevelDebug, "Query rejected"
		extra = append(extra, slog.String("error", err.Error()))
	case err != nil:
		if l.level < logger.Error {
			return
		}
		level, msg = slog.LevelError, "Query failed"
		extra = append(extra, slog.String("error", err.Error()))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		if l.level < logger.Warn {
			return
		}
		level, msg = slog.LevelWarn, "Slow query"
		extra = append(extra, slog.Duration("threshold", l.slowThreshold))
	default:
		if l.level < logger.Info {
			return
		}
		level, msg = slog.LevelDebug, "Query"
	}

	sql, rows := fc()
	attrs := append([]slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}, extra...)

	l.log(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormLogger) log(ctx context.Context) *slog.Logger {
	if reqLogger := deliverycontext.GetLogger(ctx); reqLogger != nil {
		return reqLogger.With(slog.String("component", "gorm"))
	}

	return l.fallback
}

func isExpectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		isUniqueConstraintViolation(err) ||
		isForeignKeyConstraintViolation(err)
}

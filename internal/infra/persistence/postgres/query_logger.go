package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todoapp/config"
	deliverycontext "todoapp/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger routes GORM logs through slog. Statements are logged with their
// placeholders only: bound values include emails and password hashes.
type queryLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

var (
	_ logger.Interface  = (*queryLogger)(nil)
	_ gorm.ParamsFilter = (*queryLogger)(nil)
)

func newQueryLogger(baseLogger *slog.Logger, cfg *config.Config) *queryLogger {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &queryLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: defaultSlowQueryThreshold,
	}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

// ParamsFilter drops the bound values so Explain never interpolates them into the SQL.
func (l *queryLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *queryLogger) log(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold || l.logger == nil {
		return
	}

	l.scoped(ctx).LogAttrs(ctx, level, "GORM "+level.String(),
		slog.String("message", fmt.Sprintf(msg, args...)),
	)
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := l.scoped(ctx)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		log.LogAttrs(ctx, slog.LevelError, "GORM query failed", attrs...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slow_threshold", l.slowThreshold))
		log.LogAttrs(ctx, slog.LevelWarn, "GORM slow query", attrs...)
	case l.level >= logger.Info:
		log.LogAttrs(ctx, slog.LevelDebug, "GORM query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

// scoped prefers the request logger so statements carry the request_id.
func (l *queryLogger) scoped(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.logger)
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}

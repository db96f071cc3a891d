package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes GORM's logging through zap. Queries are logged at
// debug level, failed and slow queries at warn.
type GormAdapter struct {
	log           *zap.SugaredLogger
	slowThreshold time.Duration
}

// NewGormAdapter creates a GORM logger. A zero slowThreshold disables slow
// query warnings.
func NewGormAdapter(l *zap.SugaredLogger, slowThreshold time.Duration) *GormAdapter {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &GormAdapter{log: l, slowThreshold: slowThreshold}
}

// LogMode is a no-op; the zap level decides what is written.
func (a *GormAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return a
}

func (a *GormAdapter) Info(_ context.Context, msg string, data ...interface{}) {
	a.log.Debug(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(_ context.Context, msg string, data ...interface{}) {
	a.log.Warn(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(_ context.Context, msg string, data ...interface{}) {
	a.log.Error(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.log.Warnw("query error", "sql", sql, "rows_affected", rows, "duration", elapsed, "error", err)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		a.log.Warnw("slow query", "sql", sql, "rows_affected", rows, "duration", elapsed, "threshold", a.slowThreshold)
	default:
		a.log.Debugw("sql query", "sql", sql, "rows_affected", rows, "duration", elapsed)
	}
}

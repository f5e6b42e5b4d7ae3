// Package gormlog bridges gorm's logger interface onto zap, enriching
// entries with the request trace ID when present in the context.
package gormlog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reelhouse/rental/pkg/logctx"
)

type Logger struct {
	base   *zap.SugaredLogger
	config gormlogger.Config
}

func New(base *zap.SugaredLogger) *Logger {
	return &Logger{base: base, config: gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	}}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.config
	cfg.LogLevel = level
	return &Logger{base: l.base, config: cfg}
}

func (l *Logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Info {
		logctx.FromCtx(ctx, l.base).Infow(msg, "args", data)
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Warn {
		logctx.FromCtx(ctx, l.base).Warnw(msg, "args", data)
	}
}

func (l *Logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.config.LogLevel >= gormlogger.Error {
		logctx.FromCtx(ctx, l.base).Errorw(msg, "args", data)
	}
}

func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.config.LogLevel == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logctx.FromCtx(ctx, l.base)
	fields := []interface{}{"rows", rows, "elapsed_ms", elapsed.Milliseconds()}
	if err != nil {
		if l.config.IgnoreRecordNotFoundError && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		lg.Errorw("gorm_trace", append(fields, "err", err, "sql", sql)...)
		return
	}
	if l.config.SlowThreshold > 0 && elapsed > l.config.SlowThreshold {
		lg.Warnw("gorm_slow", append(fields, "sql", sql)...)
		return
	}
	if l.config.LogLevel >= gormlogger.Info {
		lg.Infow("gorm", append(fields, "sql", sql)...)
	}
}

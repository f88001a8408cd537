package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowSQL = 200 * time.Millisecond
	// Entry batches for large vouchers produce very long INSERTs
	maxLoggedSQL = 4096
)

// GormLogger routes gorm statements into zap, tagged with the request,
// tenant and trace fields carried by ctx.
type GormLogger struct {
	base    *zap.Logger
	level   gormlogger.LogLevel
	slowSQL time.Duration
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold overrides the slow statement threshold. Zero turns the
// slow warning off.
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(g *GormLogger) { g.slowSQL = d }
}

func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	g := &GormLogger{base: base.Named("gorm"), level: level, slowSQL: defaultSlowSQL}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, gormlogger.Info, msg, args)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, gormlogger.Warn, msg, args)
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, gormlogger.Error, msg, args)
}

func (g *GormLogger) printf(ctx context.Context, at gormlogger.LogLevel, msg string, args []any) {
	if g.level < at {
		return
	}
	sugar := WithLogger(ctx, g.base).Zap().Sugar()
	switch at {
	case gormlogger.Error:
		sugar.Errorf(msg, args...)
	case gormlogger.Warn:
		sugar.Warnf(msg, args...)
	default:
		sugar.Infof(msg, args...)
	}
}

// Trace logs a finished statement. Missing rows are an expected outcome of
// lookups like FindByCode and are never reported as errors.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level == gormlogger.Silent {
		return
	}
	took := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := g.slowSQL > 0 && took > g.slowSQL

	var msg string
	switch {
	case failed && g.level >= gormlogger.Error:
		msg = "SQL error"
	case slow && g.level >= gormlogger.Warn:
		msg = "slow SQL"
	case err == nil && g.level >= gormlogger.Info:
		msg = "SQL"
	default:
		return
	}

	stmt, rows := fc()
	if len(stmt) > maxLoggedSQL {
		stmt = stmt[:maxLoggedSQL] + "...(truncated)"
	}
	fields := []zap.Field{zap.String("sql", stmt), zap.Int64("rows", rows), zap.Duration("elapsed", took)}

	l := WithLogger(ctx, g.base)
	switch msg {
	case "SQL error":
		l.Error(msg, append(fields, zap.Error(err))...)
	case "slow SQL":
		l.Warn(msg, append(fields, zap.Duration("threshold", g.slowSQL))...)
	default:
		l.Debug(msg, fields...)
	}
}

// MapGormLogLevel converts the database.log_level setting. Unknown values
// fall back to Warn so slow statements stay visible.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent", "off":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	}
	return gormlogger.Warn
}

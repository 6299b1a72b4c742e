package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const storeComponent = "store"

// GormLoggerConfig configures the GORM zap logger.
type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig warns on queries slower than 500ms; the dashboard
// scans whole date ranges, so point-lookup thresholds would be noise.
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        500 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// GormLogger routes gorm output through the context logger so store logs
// carry the request id and dashboard operation.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) message(ctx context.Context, min gormlogger.LogLevel, level zapcore.Level, msg string, data []interface{}) {
	if l.cfg.Level < min {
		return
	}
	fields := []zap.Field{zap.String("component", storeComponent)}
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	emit(FromContext(ctx), level, msg, fields)
}

// Trace logs failed queries at error, slow ones at warn and the rest at
// debug when gorm runs at Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var level zapcore.Level
	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error && !l.ignorable(err):
		level = zapcore.ErrorLevel
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		level = zapcore.WarnLevel
		err = nil
	case l.cfg.Level >= gormlogger.Info:
		level = zapcore.DebugLevel
		err = nil
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("component", storeComponent),
		zap.String("statement", statementKind(sql)),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	emit(FromContext(ctx), level, "store.query", fields)
}

// ParamsFilter drops bound values; customer names and phones never reach the log.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) ignorable(err error) bool {
	return l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound)
}

func emit(log *zap.Logger, level zapcore.Level, msg string, fields []zap.Field) {
	if ce := log.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// statementKind labels a query as COUNT, SELECT or the leading verb. For a
// WITH query the verb is the first one outside the CTE parentheses.
func statementKind(sql string) string {
	upper := strings.ToUpper(sql)
	tokens := strings.Fields(upper)
	if len(tokens) == 0 {
		return "UNKNOWN"
	}
	if tokens[0] != "WITH" {
		return verbKind(strings.Trim(tokens[0], "();"), upper)
	}

	depth := 0
	for _, token := range tokens[1:] {
		opens, closes := strings.Count(token, "("), strings.Count(token, ")")
		word := strings.Trim(token, "(),;")
		if depth+opens == 0 {
			switch word {
			case "SELECT", "INSERT", "UPDATE", "DELETE", "MERGE":
				return verbKind(word, upper)
			}
		}
		depth += opens - closes
	}
	return "UNKNOWN"
}

func verbKind(verb, upper string) string {
	if verb == "" {
		return "UNKNOWN"
	}
	if verb == "SELECT" && strings.Contains(upper, "COUNT(") {
		return "COUNT"
	}
	return verb
}

var _ gormlogger.Interface = (*GormLogger)(nil)

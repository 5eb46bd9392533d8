// Package logtrace wraps a zap logger with context-aware helpers so every line
// carries the correlation id and origin of the operation that produced it.
package logtrace

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout used on every log line.
const TimeLayout = "2006-01-02 15:04:05"

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	output io.Writer = os.Stdout
	meta   []zap.Field
)

// Setup initializes the process logger. It may be called again to change the
// service name, version or level.
func Setup(serviceName, version, lvl string) {
	level.SetLevel(ParseLevel(lvl))

	mu.Lock()
	meta = []zap.Field{zap.String("service", serviceName)}
	if version != "" {
		meta = append(meta, zap.String("version", version))
	}
	mu.Unlock()

	rebuild()
}

// SetOutput redirects log output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()

	rebuild()
}

// SetLevel changes the minimum level at runtime.
func SetLevel(lvl string) {
	level.SetLevel(ParseLevel(lvl))
}

// ParseLevel maps debug/info/warn/error to a zap level, defaulting to info.
func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// DebugEnabled reports whether debug lines are emitted.
func DebugEnabled() bool {
	return level.Enabled(zapcore.DebugLevel)
}

func rebuild() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " "
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.StacktraceKey = zapcore.OmitKey

	mu.Lock()
	defer mu.Unlock()

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(output), level)
	logger = zap.New(core).With(meta...)
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	_ = l.Sync()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.DebugLevel, msg, fields)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.InfoLevel, msg, fields)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.WarnLevel, msg, fields)
}

// Error logs a message at error level.
func Error(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.ErrorLevel, msg, fields)
}

func write(ctx context.Context, lvl zapcore.Level, msg string, fields Fields) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	ce := l.Check(lvl, msg)
	if ce == nil {
		return
	}

	zf := make([]zap.Field, 0, len(fields)+2)
	if cid := CorrelationIDFromContext(ctx); cid != "unknown" {
		zf = append(zf, zap.String(FieldCorrelationID, cid))
	}
	if origin := OriginFromContext(ctx); origin != "unknown" {
		zf = append(zf, zap.String(FieldOrigin, origin))
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	ce.Write(zf...)
}

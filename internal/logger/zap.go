package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger so callers use Infow/Errorw key-value pairs.
type Logger struct {
	*zap.SugaredLogger
}

const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(level zapcore.Level, ws zapcore.WriteSyncer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(ws), zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr string) *Logger {
	return NewWithSyncer(levelStr, zapcore.AddSync(os.Stdout))
}

// NewWithSyncer builds a non-global logger writing to ws.
func NewWithSyncer(levelStr string, ws zapcore.WriteSyncer) *Logger {
	core := newConsoleCore(toZapLevel(levelStr), ws)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// With returns a child logger carrying the given key-value pairs.
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(kv...)}
}

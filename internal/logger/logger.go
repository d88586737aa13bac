package logger

import (
	"strings"
	"sync"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// AppName is stamped on every line written by the process logger.
const AppName = "optiwatt"

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process logger, tagged with app=optiwatt. Only the first
// call's level is honoured.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level).With("app", AppName)
	})
	return globalLogger
}

// ValidLevel reports whether level is one of the names accepted in log.level.
// Blank means the default.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return true
	}
	return false
}

// Component returns a child logger for one service (session, insights, reports, ...).
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

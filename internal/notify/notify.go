// Package notify is the user-facing notification collaborator. Core
// components treat it as optional: absence degrades to a no-op or a log
// line, never an error.
package notify

import "go.uber.org/zap"

// Level grades a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier delivers user-facing messages.
type Notifier interface {
	Notify(message string, level Level)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(string, Level) {}

// Logger routes notifications to a structured log.
type Logger struct {
	logger *zap.Logger
}

// NewLogger builds a log-backed Notifier.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Notify(message string, level Level) {
	switch level {
	case LevelWarning:
		l.logger.Warn(message)
	case LevelError:
		l.logger.Error(message)
	default:
		l.logger.Info(message)
	}
}

package logger

import (
	"sync/atomic"
)

// Logger writes tagged, levelled messages for one subsystem to a Backend.
type Logger struct {
	lvl Level // atomic
	tag string
	b   *Backend
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}

// Tag returns the subsystem tag of the logger.
func (l *Logger) Tag() string {
	return l.tag
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	if l.Level() <= LevelTrace {
		l.b.print(LevelTrace, l.tag, args...)
	}
}

// Tracef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	if l.Level() <= LevelTrace {
		l.b.printf(LevelTrace, l.tag, format, args...)
	}
}

// Debug writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	if l.Level() <= LevelDebug {
		l.b.print(LevelDebug, l.tag, args...)
	}
}

// Debugf writes a formatted message with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.Level() <= LevelDebug {
		l.b.printf(LevelDebug, l.tag, format, args...)
	}
}

// Info writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	if l.Level() <= LevelInfo {
		l.b.print(LevelInfo, l.tag, args...)
	}
}

// Infof writes a formatted message with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.Level() <= LevelInfo {
		l.b.printf(LevelInfo, l.tag, format, args...)
	}
}

// Warn writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	if l.Level() <= LevelWarn {
		l.b.print(LevelWarn, l.tag, args...)
	}
}

// Warnf writes a formatted message with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.Level() <= LevelWarn {
		l.b.printf(LevelWarn, l.tag, format, args...)
	}
}

// Error writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	if l.Level() <= LevelError {
		l.b.print(LevelError, l.tag, args...)
	}
}

// Errorf writes a formatted message with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.Level() <= LevelError {
		l.b.printf(LevelError, l.tag, format, args...)
	}
}

// Critical writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	if l.Level() <= LevelCritical {
		l.b.print(LevelCritical, l.tag, args...)
	}
}

// Criticalf writes a formatted message with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if l.Level() <= LevelCritical {
		l.b.printf(LevelCritical, l.tag, format, args...)
	}
}

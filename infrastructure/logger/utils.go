package logger

import (
	"time"
)

// LogAndMeasureExecutionTime returns a function that logs, at debug level,
// how long ago LogAndMeasureExecutionTime was called. The start itself is
// logged at trace level. Nothing is measured when log is above debug level.
//
// Usage: defer LogAndMeasureExecutionTime(log, "ComputeAncestorCounts")()
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	if log.Level() > LevelDebug {
		return func() {}
	}
	start := time.Now()
	log.Tracef("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}

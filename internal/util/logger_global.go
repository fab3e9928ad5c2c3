package util

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger instance. When logFile is empty,
// entries go to stderr only.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		logger := NewLogger(logLevel)
		if debugToConsole || logFile == "" {
			logger.AddOutput(NewConsoleOutput(os.Stderr, FormatText))
		}
		if logFile != "" {
			if fileOutput, err := NewFileOutput(logFile, FormatText); err == nil {
				logger.AddOutput(fileOutput)
			} else {
				logger.AddOutput(NewConsoleOutput(os.Stderr, FormatText))
				logger.Warnf("falling back to stderr, cannot open log file %s: %v", logFile, err)
			}
		}
		globalLogger = logger
	})
}

// LogDebug convenience functions for logging
func LogDebug(msg string) {
	if globalLogger != nil {
		globalLogger.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogWarn(msg string) {
	if globalLogger != nil {
		globalLogger.Warn(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if globalLogger != nil {
		globalLogger.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}

// Package logger provides centralized logging using arbor.
package logger

import (
	"sync"

	"github.com/ternarybob/arbor"
	arborcommon "github.com/ternarybob/arbor/common"
	"github.com/ternarybob/arbor/models"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// Settings selects the logger level and output format.
type Settings struct {
	Level      string // trace, debug, info, warn, error
	Format     string // "text" (logfmt) or "json"
	TimeFormat string
}

// GetLogger returns the global logger instance.
// If Setup hasn't been called yet, returns a console logger at info level.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if globalLogger == nil {
		globalLogger = arbor.NewLogger().
			WithConsoleWriter(writerConfig(Settings{}, models.LogWriterTypeConsole)).
			WithLevelFromString("info")
	}
	return globalLogger
}

// InitLogger stores the provided logger as the global singleton instance.
func InitLogger(logger arbor.ILogger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// Setup builds a console logger from s and installs it globally.
func Setup(s Settings) arbor.ILogger {
	level := s.Level
	if level == "" {
		level = "info"
	}
	logger := arbor.NewLogger().
		WithConsoleWriter(writerConfig(s, models.LogWriterTypeConsole)).
		WithLevelFromString(level)

	InitLogger(logger)
	return logger
}

func writerConfig(s Settings, writerType models.LogWriterType) models.WriterConfiguration {
	timeFormat := "15:04:05.000"
	if s.TimeFormat != "" {
		timeFormat = s.TimeFormat
	}

	outputType := models.OutputFormatLogfmt
	if s.Format == "json" {
		outputType = models.OutputFormatJSON
	}

	return models.WriterConfiguration{
		Type:             writerType,
		TimeFormat:       timeFormat,
		OutputType:       outputType,
		DisableTimestamp: false,
	}
}

// Stop flushes any remaining context logs before application shutdown.
func Stop() {
	arborcommon.Stop()
}

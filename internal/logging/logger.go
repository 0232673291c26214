package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

const (
	// LogLevelEnvVar controls logging verbosity. When unset or empty,
	// logging is silent (no zap output).
	// Valid values: "debug", "info", "warn", "error"
	LogLevelEnvVar = "CARBON_LOG_LEVEL"

	// LogFileEnvVar overrides where log output is written. The terminal UI
	// owns stdout, so logs never go there.
	LogFileEnvVar = "CARBON_LOG_FILE"
)

// redactedKeys are payload keys never written to the log
var redactedKeys = map[string]bool{
	"password":         true,
	"confirm_password": true,
	"email":            true,
}

// Initialize creates a new logger with the specified level writing to path.
// If level is empty, it checks CARBON_LOG_LEVEL. If neither is set, logging
// is disabled (silent mode). An empty path falls back to CARBON_LOG_FILE and
// then stderr.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}
	if path == "" {
		path = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from CARBON_LOG_LEVEL and
// CARBON_LOG_FILE. Silent by default.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// SetLogger replaces the global logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAPIRequest logs an outbound API request. Sensitive payload keys are
// replaced before logging.
func LogAPIRequest(requestID, method, path string, payload map[string]any) {
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	}
	if payload != nil {
		fields = append(fields, zap.Any("payload", Redact(payload)))
	}
	Debug("API request", fields...)
}

// LogAPIResponse logs the outcome of an API request
func LogAPIResponse(requestID, path string, statusCode int, elapsed time.Duration) {
	Info("API response",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
	)
}

// LogTransition logs a selection mode change
func LogTransition(from, to, label string) {
	Debug("Mode transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("label", label),
	)
}

// Redact returns a copy of payload with sensitive values masked
func Redact(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if redactedKeys[strings.ToLower(k)] {
			out[k] = "***"
			continue
		}
		out[k] = v
	}
	return out
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

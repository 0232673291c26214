// Package logging provides structured logging for the carbon client.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used across the client: outbound API calls, their responses and
// selection mode transitions.
//
// # Log Levels
//
//   - Debug: request payloads (redacted), mode transitions
//   - Info: API responses with status and latency
//   - Warn: dropped stale responses, recoverable failures
//   - Error: configuration or session persistence failures
//
// # Output
//
// The terminal UI owns stdout, so log lines go to the file named by
// CARBON_LOG_FILE (the CLI defaults it to carbon.log in the config
// directory). Logging is silent unless CARBON_LOG_LEVEL or --log-level is set:
//
//	if err := logging.Initialize("debug", "/tmp/carbon.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Redaction
//
// Passwords and e-mail addresses never reach the log. LogAPIRequest passes
// payloads through Redact before encoding them.
package logging

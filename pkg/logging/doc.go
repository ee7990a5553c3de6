// Package logging provides structured logging utilities for the pizza tester.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so the CLI and the web UI daemon log the same way: JSON to stderr, a level
// taken from LOG_LEVEL or an explicit flag, and module/version attributes on
// every record. Debug level adds source locations.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("pizzad", version)
//	    slog.Info("fetching pizzas", "endpoint", "pizzas")
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("pizza", version, "warn")
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "pizzad",
//	    "version": "v1.0.0",
//	    "port": 8080
//	}
package logging

// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human-readable console
// encoding for interactive runs and JSON for batch jobs.
//
// # Run correlation
//
// WithRunID attaches a random run_id to the logger. Commands call it once, right after
// construction, and pass the resulting logger down explicitly; nothing in the module
// uses the zap globals.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log)
//	log.Info("Extraction started")
package logger

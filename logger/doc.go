// Package logger provides structured logging for streamkit applications
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The signal package's
// LogEvents tap uses it to trace subscription activity.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("signal")
//	log.Debug("subscribed", logger.Fields(logger.FieldSignal, "search"))
package logger

// Package logger provides structured logging for subsl tools using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Logs go to stderr by
// default so that stdout stays free for command output.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "subsl").WithComponent("runner")
//	log.Info("split complete", logger.Fields("segments", n))
package logger

// Package errors provides structured error handling for subsl tools.
// It implements an error type carrying a machine-readable code, details for
// structured logging, and a mapping from codes to process exit statuses.
package errors

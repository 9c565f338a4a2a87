// Package errors provides classified error primitives for the preprocessor.
//
// Key features:
//   - ErrorCategory: broad classification (validation, config, unsupported, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and stderr presentation
//
// Example usage:
//
//	err := errors.ValidationError("failed to parse book").
//		WithCause(cause).
//		WithContext("bytes", n).
//		Build()
package errors

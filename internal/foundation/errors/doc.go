// Package errors provides the classified error type used across sitenav.
//
// A ClassifiedError carries a category, a severity, a retry strategy and
// structured context (node path, link, platform, file). Errors are built with a
// fluent builder and presented to the user by the CLI adapter, which also picks
// the process exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryConfig, "sidebar is invalid").
//		Fatal().
//		WithContext("node_path", "[1 0]").
//		Build()
package errors

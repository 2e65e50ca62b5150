// Package logging assembles the slog loggers used by the stratis client.
//
// It owns the console and JSON handlers, level parsing and output routing,
// and the correlation helpers that tag every line emitted during one CLI
// invocation with the same correlation_id. A no-op logger is provided for
// tests and for library callers that do not want diagnostics.
package logging

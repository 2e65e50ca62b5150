package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID ties together every line emitted by one CLI invocation.
	FieldCorrelationID = "correlation_id"
	// FieldCommand is the space-joined command path, e.g. "filesystem list".
	FieldCommand = "command"
	// FieldInterface is the bus interface a call or property read targets.
	FieldInterface = "interface"
	// FieldMethod is the remote method or property name.
	FieldMethod = "method"
	// FieldObjectPath is the remote object a call targets.
	FieldObjectPath = "object_path"
	// FieldErrorHint is a short next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldErrorCode carries the daemon's symbolic error name.
	FieldErrorCode = "error_code"
)

type contextKey int

const (
	correlationKey contextKey = iota
	commandKey
)

// WithCorrelationID stores id on ctx for later log enrichment.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationIDFromContext returns the id stored by WithCorrelationID.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey).(string)
	return id, ok && id != ""
}

// WithCommand stores the running command path on ctx.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext returns the command path stored by WithCommand.
func CommandFromContext(ctx context.Context) (string, bool) {
	cmd, ok := ctx.Value(commandKey).(string)
	return cmd, ok && cmd != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if cmd, ok := CommandFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCommand, cmd))
	}
	if id, ok := CorrelationIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

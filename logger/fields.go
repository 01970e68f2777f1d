package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across sysfacts.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID = "run_id"

	// Resolution
	FieldDomain   = "domain"
	FieldSubValue = "sub_value"
	FieldSource   = "source"
	FieldFact     = "fact"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount        = "count"
	FieldAcquisitions = "acquisitions"

	// Files
	FieldPath = "path"
)

// Context keys for propagating logging context
type contextKey string

const runIDKey contextKey = "logger_run_id"

// WithRunID adds a gather run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}

	return fields
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Registry struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Registry {
//	    return &Registry{
//	        logger: logger.ComponentLogger("domains.registry"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

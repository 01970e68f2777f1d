// Package errors provides error handling for sysfacts.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Wrap an adapter failure with context
//	if err := key.Close(); err != nil {
//	    return errors.Wrap(err, "failed to close registry key")
//	}
//
//	// Check for a sentinel
//	if errors.Is(err, errors.ErrUnsupported) {
//	    // capability not present on this OS
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef

	// CombineErrors keeps the first error as the cause and attaches the
	// second as a secondary error
	CombineErrors = crdb.CombineErrors
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors shared by the data sources, resolvers and registry.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnknownSubValue indicates a resolver was asked for a sub-value its
	// domain never declared. This is a caller bug, not absent data.
	ErrUnknownSubValue = New("unknown sub-value")

	// ErrUnknownDomain indicates a domain identifier outside the known set
	ErrUnknownDomain = New("unknown domain")

	// ErrUnsupported indicates a data source capability is not available on
	// the running operating system
	ErrUnsupported = New("unsupported on this platform")

	// ErrNotFound indicates a registry key or value, sysctl OID or file does
	// not exist
	ErrNotFound = New("not found")

	// ErrTimeout indicates an adapter call exceeded its deadline
	ErrTimeout = New("operation timed out")
)

// IsUnsupported checks if an error is or wraps ErrUnsupported
func IsUnsupported(err error) bool {
	return err != nil && Is(err, ErrUnsupported)
}

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsUnknownSubValue checks if an error is or wraps ErrUnknownSubValue
func IsUnknownSubValue(err error) bool {
	return err != nil && Is(err, ErrUnknownSubValue)
}

// WrapNotFound marks err as a not-found error while keeping its message
func WrapNotFound(err error, context string) error {
	return Wrap(Wrap(ErrNotFound, err.Error()), context)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewUnsupportedError creates an unsupported error naming the capability
func NewUnsupportedError(capability string) error {
	return Wrap(ErrUnsupported, capability)
}

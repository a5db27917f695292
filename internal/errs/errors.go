// Package errs provides the unified error type used across the generator.
//
// Every subsystem (database drivers, metadata source, generators,
// orchestrator) wraps its native errors into *errs.Error before returning
// them to callers. Callers use the Is* predicates to handle errors without
// importing driver-specific packages.
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindConnectionFailed, "ping failed", pgErr)
//
//	// In a caller — check error kind:
//	if errs.IsNotFound(err) {
//	    log.Fatalf("schema or table missing: %v", err)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
// Both database backends (Postgres, MySQL) map their native errors to one
// of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // schema, table, or row does not exist
	ErrKindConnectionFailed         // cannot reach or authenticate to the database
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // SQL operation error
	ErrKindStorageFailed            // document could not be persisted (filesystem or object store)
	ErrKindInvalidInput             // bad arguments from the caller (e.g. unknown capability flag)
	ErrKindUnsupportedType          // a native column type has no logical type mapping
	ErrKindDisposed                 // operation attempted after resources were released
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindStorageFailed:
		return "storage_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindUnsupportedType:
		return "unsupported_type"
	case ErrKindDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all generator subsystems.
// Drivers and generators produce it; callers inspect it via the Is*
// predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotFound reports whether err represents a missing schema, table, or row.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a SQL operation failure.
func IsQueryFailed(err error) bool {
	return kindOf(err) == ErrKindQueryFailed
}

// IsStorageFailed reports whether err is a document persistence failure.
func IsStorageFailed(err error) bool {
	return kindOf(err) == ErrKindStorageFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// IsUnsupportedType reports whether err names a column type with no logical mapping.
func IsUnsupportedType(err error) bool {
	return kindOf(err) == ErrKindUnsupportedType
}

// IsDisposed reports whether err was caused by using an orchestrator after Close.
func IsDisposed(err error) bool {
	return kindOf(err) == ErrKindDisposed
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

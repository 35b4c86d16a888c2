// Package errors provides custom error types for the Greenlens SDK.
// The kinds carry the evaluation pipeline's failure taxonomy, most
// importantly the distinction between "no data supplied" and every
// other adapter failure.
package errors

import (
	"errors"
	"fmt"
)

// =============================================================================
// Base Error Types
// =============================================================================

// Error is the base error type for all SDK errors.
type Error struct {
	// Kind indicates the category of error
	Kind Kind

	// Op is the operation being performed (e.g., "adapters.CrossValidate")
	Op string

	// Message is a human-readable description
	Message string

	// Err is the underlying error
	Err error
}

// Kind represents the kind/category of error.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindNoData signals that an adapter was constructed without a reference
	// dataset. It is a first-class state, never a penalty: the orchestrator
	// converts it into a null-score informational result.
	KindNoData

	// KindInvalidInput covers malformed caller-supplied data such as a
	// reference table with no usable company column.
	KindInvalidInput

	// KindMalformed covers extraction output that is not parseable JSON or
	// fails schema validation. Callers treat it as "no event", not a fault.
	KindMalformed

	KindNetwork
	KindTimeout
	KindRateLimit
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNoData:
		return "no_data"
	case KindInvalidInput:
		return "invalid_input"
	case KindMalformed:
		return "malformed"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindRateLimit:
		return "rate_limit"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// =============================================================================
// Constructors
// =============================================================================

// E constructs an Error from the given arguments.
// Arguments can be: Kind, string (Op then Message), error.
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Kind:
			e.Kind = a
		case string:
			if e.Op == "" {
				e.Op = a
			} else {
				e.Message = a
			}
		case error:
			e.Err = a
		}
	}
	return e
}

// New creates a new simple error.
func New(message string) error {
	return &Error{Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// NoData creates the "reference data not supplied" error for an adapter.
// The hint names where the caller can obtain the dataset.
func NoData(op, hint string) error {
	return &Error{Kind: KindNoData, Op: op, Message: hint}
}

// =============================================================================
// Error Checkers
// =============================================================================

// GetKind returns the Kind of the error, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNoData reports whether the error is the "no reference data" state.
// This is the branch the pipeline orchestrator takes to avoid conflating
// missing data with missing compliance.
func IsNoData(err error) bool {
	return GetKind(err) == KindNoData
}

// IsMalformed reports whether the error is a malformed-extraction error.
func IsMalformed(err error) bool {
	return GetKind(err) == KindMalformed
}

// IsNetworkError reports whether the error is a network error.
func IsNetworkError(err error) bool {
	return GetKind(err) == KindNetwork
}

// IsTimeoutError reports whether the error is a timeout error.
func IsTimeoutError(err error) bool {
	return GetKind(err) == KindTimeout
}

// IsRetryable reports whether retrying the operation could succeed.
func IsRetryable(err error) bool {
	switch GetKind(err) {
	case KindNetwork, KindTimeout, KindRateLimit:
		return true
	}
	return false
}

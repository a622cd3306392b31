package hrfco

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error for the tool dispatcher and the transports.
type Kind string

const (
	// KindValidation marks caller-visible argument problems. Never retried.
	KindValidation Kind = "validation"
	// KindObservatory marks unknown station identifiers.
	KindObservatory Kind = "observatory"
	// KindAPI marks upstream transport, decode, or upstream-level errors.
	KindAPI Kind = "api"
	// KindCache marks internal cache failures; treated as a cache miss.
	KindCache Kind = "cache"
	// KindCancel marks cooperative cancellation.
	KindCancel Kind = "cancel"
	// KindInternal marks bugs; states that should be unreachable.
	KindInternal Kind = "internal"
)

// Error carries a kind, an optional upstream code, and a human-readable
// message. All errors crossing package boundaries in this module are of
// this type.
type Error struct {
	Kind    Kind
	Code    string // upstream error code, when present ("920", "930", ...)
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Observatoryf builds an unknown-station error.
func Observatoryf(format string, args ...any) *Error {
	return &Error{Kind: KindObservatory, Message: fmt.Sprintf(format, args...)}
}

// APIError builds an upstream error with an optional upstream code.
func APIError(code string, err error, format string, args ...any) *Error {
	return &Error{Kind: KindAPI, Code: code, Err: err, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an internal error.
func Internalf(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain. Context cancellation maps
// to KindCancel; anything unrecognized is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancel
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf extracts the upstream code from an error chain, if any.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

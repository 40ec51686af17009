package errors

import (
	"errors"
	"fmt"
)

// ErrOptimisticLock a versioned row was modified by another operation
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")

// Kind stable error category; the HTTP layer maps it to a status code
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindRegistration Kind = "registration"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInvalidState Kind = "invalid_state"
	KindInternal     Kind = "internal"
)

// Error business error with a stable kind and a user-facing message
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches another *Error with the same kind and message, so sentinels survive wrapping and copying
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound referenced entity does not exist
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Conflict uniqueness violation or an already-active tenure
func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// Validation field constraint violated
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// Registration event registration precondition failed
func Registration(format string, args ...interface{}) *Error {
	return newError(KindRegistration, format, args...)
}

// Unauthorized missing, invalid or wrong-typed token
func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

// Forbidden identity lacks the permission or scope
func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

// InvalidState entity state does not allow the operation
func InvalidState(format string, args ...interface{}) *Error {
	return newError(KindInvalidState, format, args...)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
// ErrOptimisticLock surfaces as a conflict.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrOptimisticLock) {
		return KindConflict
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err; internal errors get a generic one
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if errors.Is(err, ErrOptimisticLock) {
		return ErrOptimisticLock.Error()
	}
	return "internal server error"
}

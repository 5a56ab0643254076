// Package apperr defines the application error taxonomy shared by repositories,
// services and HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindDatabase   Kind = "database"
	KindProvider   Kind = "provider"
)

// Error is the single error type surfaced above the repository layer.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field violations for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels usable with errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrDatabase   = &Error{Kind: KindDatabase}
	ErrProvider   = &Error{Kind: KindProvider}
)

// Validation builds a validation error from field violations.
func Validation(fields map[string]string) *Error {
	msg := "validation failed"
	if len(fields) == 1 {
		for f, code := range fields {
			msg = fmt.Sprintf("%s is %s", f, code)
		}
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Invalid builds a validation error with a free-form message.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing row.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// Conflict reports a blocked delete or a uniqueness violation.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Database wraps an unclassified driver error.
func Database(err error) *Error {
	return &Error{Kind: KindDatabase, Message: "Database error: " + err.Error(), Err: err}
}

// Provider wraps a failure of the hosted model or of a local generator.
func Provider(msg string, err error) *Error {
	return &Error{Kind: KindProvider, Message: msg, Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Package apperr defines the per-operation error outcomes shared by the
// services and the HTTP layer.
package apperr

import "errors"

// Kind groups errors by how the caller should react.
type Kind string

const (
	KindValidation Kind = "validation"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
)

// Error is a typed outcome. Code doubles as the i18n message key suffix.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// Is matches on Kind and Code so wrapped copies with a different Message
// still compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithMessage returns a copy of the sentinel carrying extra detail.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg}
}

var (
	ErrInvalidDuration = &Error{Kind: KindValidation, Code: "invalid_duration"}
	ErrInvalidTime     = &Error{Kind: KindValidation, Code: "invalid_time"}
	ErrInvalidDate     = &Error{Kind: KindValidation, Code: "invalid_date"}
	ErrInvalidKind     = &Error{Kind: KindValidation, Code: "invalid_kind"}
	ErrInvalidValue    = &Error{Kind: KindValidation, Code: "invalid_value"}
	ErrInvalidInput    = &Error{Kind: KindValidation, Code: "invalid_input"}

	ErrForbidden = &Error{Kind: KindForbidden, Code: "forbidden"}

	ErrSlotUnavailable = &Error{Kind: KindConflict, Code: "slot_unavailable"}
	ErrConflict        = &Error{Kind: KindConflict, Code: "conflict"}

	ErrNotFound = &Error{Kind: KindNotFound, Code: "not_found"}
)

// KindOf returns the kind of the first *Error in err's chain, or "" for
// infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Package apperr carries the error taxonomy shared by the stores and the API
// layer. Stores raise kinded errors; the HTTP adapter maps kinds to statuses.
package apperr

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Status is the HTTP status a kind is reported with. Conflict answers 400,
// matching what storefront clients already expect for duplicate email and
// duplicate review.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg, cause: errors.New(msg)}
}

func Newf(kind Kind, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Format prints the captured stack for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.Kind, e.cause)
		return
	}
	fmt.Fprint(s, e.Message)
}

func NotFound(msg string) error     { return New(KindNotFound, msg) }
func Validation(msg string) error   { return New(KindValidation, msg) }
func Conflict(msg string) error     { return New(KindConflict, msg) }
func Unauthorized(msg string) error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) error    { return New(KindForbidden, msg) }

// KindOf returns KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message is the client-facing text for err.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Stack renders err with whatever stack trace pkg/errors captured.
func Stack(err error) string {
	return fmt.Sprintf("%+v", err)
}

// Package apperrors defines the error taxonomy shared by the service and
// HTTP layers. Every error that reaches a client is an *Error; anything else
// is reported as an internal failure.
package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidToken
	KindTokenExpired
	KindNotFound
	KindDuplicate
	KindDelivery
	KindUpload
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidToken:
		return "invalid_token"
	case KindTokenExpired:
		return "token_expired"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindDelivery:
		return "delivery"
	case KindUpload:
		return "upload"
	default:
		return "internal"
	}
}

// Error is an application error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Violations holds every failed field rule for KindValidation.
	Violations []string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind when the target is one of the bare sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrInvalidToken    = &Error{Kind: KindInvalidToken}
	ErrTokenExpired    = &Error{Kind: KindTokenExpired}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrDuplicate       = &Error{Kind: KindDuplicate}
	ErrDelivery        = &Error{Kind: KindDelivery}
	ErrUpload          = &Error{Kind: KindUpload}
)

// Validation aggregates field violations into one error. The message joins
// all violations with ", ".
func Validation(violations ...string) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    strings.Join(violations, ", "),
		Violations: violations,
	}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid token. Try Again.", Err: err}
}

func TokenExpired(err error) *Error {
	return &Error{Kind: KindTokenExpired, Message: "Token expired. Try Again.", Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Duplicate reports a unique-constraint violation on field.
func Duplicate(field string) *Error {
	return &Error{Kind: KindDuplicate, Message: "Duplicate " + field + " error."}
}

func Delivery(err error) *Error {
	return &Error{Kind: KindDelivery, Message: "Failed to send email", Err: err}
}

func Upload(msg string, err error) *Error {
	return &Error{Kind: KindUpload, Message: msg, Err: err}
}

// HTTPStatus maps err onto the response status code.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidToken, KindTokenExpired:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that is safe to show a client.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}

// Package apperr defines the application error taxonomy and its mapping
// to HTTP statuses. Every operation returns one of these coded errors;
// the HTTP boundary translates them to a JSON body of the form
// {"detail": <message>} with the mapped status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnauthenticated indicates no credential was presented.
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	// CodeInvalidCredentials indicates a credential was presented but is
	// invalid or expired.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	// CodeInvalidToken indicates a token failed signature, payload or
	// expiry checks.
	CodeInvalidToken Code = "INVALID_TOKEN"
	// CodeNotFound indicates a referenced entity is absent.
	CodeNotFound Code = "NOT_FOUND"
	// CodeDuplicateUser indicates an email or username uniqueness violation.
	CodeDuplicateUser Code = "DUPLICATE_USER"
	// CodeDuplicate indicates a generic uniqueness violation.
	CodeDuplicate Code = "DUPLICATE"
	// CodeInvalidExchange indicates the OAuth provider rejected the code
	// exchange or returned a malformed profile.
	CodeInvalidExchange Code = "INVALID_EXCHANGE"
	// CodeForbidden indicates the caller lacks the required privilege.
	CodeForbidden Code = "FORBIDDEN"
	// CodeInvalidInput indicates a malformed or invalid request payload.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeInternal indicates an unexpected internal failure.
	CodeInternal Code = "INTERNAL"
)

// Error is the application error type carried from stores and services
// up to the HTTP boundary.
type Error struct {
	Code    Code
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is makes two coded errors equal when their codes match, so sentinels
// like apperr.NotFound("x") compare with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause attaches an underlying error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// New creates a coded error with an explicit HTTP status.
func New(code Code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

func InvalidCredentials(message string) *Error {
	return New(CodeInvalidCredentials, message, http.StatusUnauthorized)
}

func InvalidToken(message string) *Error {
	return New(CodeInvalidToken, message, http.StatusUnauthorized)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func DuplicateUser(message string) *Error {
	return New(CodeDuplicateUser, message, http.StatusBadRequest)
}

func Duplicate(message string) *Error {
	return New(CodeDuplicate, message, http.StatusBadRequest)
}

func InvalidExchange(message string) *Error {
	return New(CodeInvalidExchange, message, http.StatusBadRequest)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Internal(cause error) *Error {
	return New(CodeInternal, "internal server error", http.StatusInternalServerError).WithCause(cause)
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusOf returns the HTTP status mapped to err, or 500 for uncoded
// errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err. Uncoded errors
// are masked so internals never leak into responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

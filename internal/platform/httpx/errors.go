// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. RespondError maps them onto
// status codes; constructors below attach the client-facing message.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Unwrap() error { return e.kind }

// NotFoundError builds a 404-mapped error with a client-facing message.
func NotFoundError(msg string) error { return &apiError{kind: ErrNotFound, msg: msg} }

// DuplicateError builds a 409-mapped error with a client-facing message.
func DuplicateError(msg string) error { return &apiError{kind: ErrDuplicate, msg: msg} }

// ValidationError builds a 400-mapped error with a client-facing message.
func ValidationError(msg string) error { return &apiError{kind: ErrValidation, msg: msg} }

// UnauthorizedError builds a 401-mapped error with a client-facing message.
func UnauthorizedError(msg string) error { return &apiError{kind: ErrUnauthorized, msg: msg} }

// RespondError maps a domain error onto the API error envelope. Anything
// not matching a sentinel is treated as internal: the client sees a
// generic message and the caller is expected to log the underlying error.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")

	// Auth
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrTooManyAttempts    = errors.New("too many failed attempts, try again later")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// General
	ErrNotFound         = errors.New("record not found")
	ErrBadRequest       = errors.New("bad request")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidSelector  = errors.New("unknown selector")
	ErrStoreUnavailable = errors.New("storage is unavailable")
	ErrFileMissing      = errors.New("stored file not found")
)

// InvalidInputError is a client error with a message built for the user.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrBadRequest }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and the user facing message, while Err
// and Context stay in the logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// SelectorError names the rejected selector value.
func SelectorError(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidSelector, kind, value)
}

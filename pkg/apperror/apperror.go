package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("not configured")
	ErrUpstream      = errors.New("upstream provider failure")
	ErrInternal      = errors.New("internal server error")
)

// AppError carries the message shown to the client in Message; Details and Err are for logs only.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(msg string, err error) *AppError {
	return NewAppError(ErrInvalidInput, msg, "request rejected by validation", err)
}

func NewUnauthorized(details string) *AppError {
	return NewAppError(ErrUnauthorized, "Unauthorized", details, nil)
}

func NewMisconfigured(msg, details string) *AppError {
	return NewAppError(ErrMisconfigured, msg, details, nil)
}

// NewUpstream keeps the provider message for the client when it has one.
func NewUpstream(msg, fallback string, err error) *AppError {
	if msg == "" {
		msg = fallback
	}
	return NewAppError(ErrUpstream, msg, fallback, err)
}

func NewInternal(msg string, err error) *AppError {
	return NewAppError(ErrInternal, msg, "unexpected failure", err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for any error.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An internal server error occurred"
}

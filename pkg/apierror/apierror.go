package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	cause      error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying failure so callers can still match it with errors.Is.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

// Wrap attaches cause to a new APIError. The cause is logged, never rendered.
func Wrap(cause error, code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status, cause: cause}
}

func Internal(cause error, message string) *APIError {
	return Wrap(cause, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

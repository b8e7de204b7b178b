package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Err        error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		if inner := e.Err.Error(); inner != "" {
			return fmt.Sprintf("%s: %s", e.Message, inner)
		}
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithReason returns a copy of e whose message names the violated constraint.
// errors.Is(result, e) still holds.
func (e *AppError) WithReason(format string, args ...any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message + ": " + fmt.Sprintf(format, args...),
		HTTPStatus: e.HTTPStatus,
		Err:        sentinel{e},
	}
}

// sentinel keeps the parent reachable for errors.Is without repeating its
// message in Error().
type sentinel struct{ parent *AppError }

func (s sentinel) Error() string { return "" }
func (s sentinel) Unwrap() error { return s.parent }

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP flattens any error into the shape written by response.Error.
// Unknown errors become INTERNAL_ERROR without leaking their text.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

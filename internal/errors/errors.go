package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when input fails a domain rule.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when signing up with an email already in use.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAuthFailure is returned for any failed login, without saying why.
	ErrAuthFailure = errors.New("invalid email or password")
	// ErrAuthRequired is returned when a request carries no usable session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries a user-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation creates a ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	LoginURL string `json:"login_url,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	LoginURL   string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:    e.Message,
		Code:     e.Code,
		LoginURL: e.LoginURL,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, verr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateEmail):
		httpErr := NewHTTPError(http.StatusConflict, ErrDuplicateEmail.Error(), "DUPLICATE_EMAIL")
		httpErr.LoginURL = "/api/auth/login"
		return httpErr
	case errors.Is(err, ErrAuthFailure):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthFailure.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAuthRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthRequired.Error(), "AUTH_REQUIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

package apierror

import (
	"errors"
	"net/http"
)

// ApiError is the domain error type. StatusCode and Message travel to the
// client unchanged; Detail is only attached for custom failures and is
// included in the error envelope's errors field.
type ApiError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *ApiError) Error() string {
	return e.Message
}

func New(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

// Wrap builds an ApiError that carries the underlying failure detail.
func Wrap(statusCode int, message string, err error) *ApiError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &ApiError{StatusCode: statusCode, Message: message, Detail: detail}
}

func BadRequest(message string) *ApiError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *ApiError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	return New(http.StatusConflict, message)
}

func Internal(message string, err error) *ApiError {
	return Wrap(http.StatusInternalServerError, message, err)
}

// From normalizes any error to an ApiError. Unexpected errors collapse to a
// generic 500 so internal details never reach the client.
func From(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return New(http.StatusInternalServerError, "Something went wrong")
}

// IsUnexpected reports whether err is not a domain ApiError and therefore
// should be logged at the boundary before being collapsed to a 500.
func IsUnexpected(err error) bool {
	var apiErr *ApiError
	return !errors.As(err, &apiErr)
}

// Package errors defines the service error taxonomy shared by every layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure independently of the transport.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeInvalidToken  Code = "INVALID_TOKEN"
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeInternal      Code = "INTERNAL_ERROR"
)

// ServiceError is an error with a stable status and client-facing message.
type ServiceError struct {
	Code       Code
	HTTPStatus int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New creates a ServiceError.
func New(code Code, status int, message string, err error) *ServiceError {
	return &ServiceError{Code: code, HTTPStatus: status, Message: message, Err: err}
}

// Validation reports malformed or out-of-range input.
func Validation(message string) *ServiceError {
	if message == "" {
		message = "Validation error"
	}
	return New(CodeValidation, http.StatusBadRequest, message, nil)
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "Unauthorized"
	}
	return New(CodeUnauthorized, http.StatusUnauthorized, message, nil)
}

// InvalidToken reports a malformed, forged or expired token.
func InvalidToken(err error) *ServiceError {
	return New(CodeInvalidToken, http.StatusUnauthorized, "Invalid token", err)
}

// Configuration reports a required server setting that is absent.
func Configuration(message string) *ServiceError {
	return New(CodeConfiguration, http.StatusInternalServerError, message, nil)
}

// NotFound reports a resource that does not exist or is not owned by the caller.
func NotFound(message string) *ServiceError {
	if message == "" {
		message = "Not found"
	}
	return New(CodeNotFound, http.StatusNotFound, message, nil)
}

// Conflict reports a duplicate unique field.
func Conflict(message string) *ServiceError {
	return New(CodeConflict, http.StatusConflict, message, nil)
}

// Internal wraps an unclassified failure.
func Internal(message string, err error) *ServiceError {
	if message == "" {
		message = "Internal server error"
	}
	return New(CodeInternal, http.StatusInternalServerError, message, err)
}

// GetServiceError returns the first ServiceError in err's chain, or nil.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// HasCode reports whether err carries a ServiceError with the given code.
func HasCode(err error, code Code) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == code
}

func IsValidation(err error) bool { return HasCode(err, CodeValidation) }
func IsNotFound(err error) bool   { return HasCode(err, CodeNotFound) }
func IsConflict(err error) bool   { return HasCode(err, CodeConflict) }

// IsAuth reports any authentication failure, including a missing signing secret.
func IsAuth(err error) bool {
	return HasCode(err, CodeUnauthorized) || HasCode(err, CodeInvalidToken) || HasCode(err, CodeConfiguration)
}

// Is and As re-export the standard helpers so callers need a single import.
func Is(err, target error) bool { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application's error taxonomy.
const (
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeMalformedCredential = "MALFORMED_CREDENTIAL"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeRateLimited         = "RATE_LIMITED"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	RetryAt string `json:"retry_at,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	// RetryAt is set for RATE_LIMITED errors: the next instant at which the
	// rejected operation becomes eligible.
	RetryAt *time.Time
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func NewMalformedCredentialError(message string) *AppError {
	return &AppError{
		Code:    CodeMalformedCredential,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewRateLimitedError(message string, retryAt time.Time) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: message,
		RetryAt: &retryAt,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// statusByCode maps error codes to stable HTTP statuses.
var statusByCode = map[string]int{
	CodeUnauthenticated:     fiber.StatusUnauthorized,
	CodeMalformedCredential: fiber.StatusUnauthorized,
	CodeForbidden:           fiber.StatusForbidden,
	CodeNotFound:            fiber.StatusNotFound,
	CodeConflict:            fiber.StatusConflict,
	CodeRateLimited:         fiber.StatusTooManyRequests,
	CodeValidation:          fiber.StatusBadRequest,
	CodeInternal:            fiber.StatusInternalServerError,
}

// StatusFor returns the HTTP status for an error. Unknown errors map to 500.
func StatusFor(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return status
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response. Wrapped internal
// detail is never serialized; only the stable code and message leave the server.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.RetryAt != nil {
			response.RetryAt = appErr.RetryAt.UTC().Format(time.RFC3339)
		}
	} else {
		response = ErrorResponse{
			Error: "Request could not be processed",
			Code:  CodeInternal,
		}
	}

	return c.Status(status).JSON(response)
}

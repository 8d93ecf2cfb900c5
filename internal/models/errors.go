package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicateHandle   = "DUPLICATE_HANDLE"
	CodeSelfFollow        = "SELF_FOLLOW"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeTransientStorage  = "TRANSIENT_STORAGE"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
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
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewDuplicateHandleError(handle string) *AppError {
	return &AppError{
		Code:    CodeDuplicateHandle,
		Message: fmt.Sprintf("handle %q is already taken", handle),
	}
}

func NewSelfFollowError() *AppError {
	return &AppError{
		Code:    CodeSelfFollow,
		Message: "you cannot follow yourself",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInvalidCredentialError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredential,
		Message: "invalid credentials",
	}
}

// NewTransientStorageError marks an aborted storage transaction. The whole
// operation is safe to retry by the caller; the core never retries it.
func NewTransientStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeTransientStorage,
		Message: "storage transaction aborted, retry the operation",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// statusForCode maps error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeDuplicateHandle:
		return fiber.StatusConflict
	case CodeSelfFollow, CodeValidation:
		return fiber.StatusBadRequest
	case CodeInvalidCredential:
		return fiber.StatusUnauthorized
	case CodeTransientStorage:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response. AppErrors pick
// their status from the code; anything else is a 500 unless status overrides.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil && appErr.Code != CodeInternal {
			response.Details = appErr.Err.Error()
		}
		return c.Status(statusForCode(appErr.Code)).JSON(response)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}

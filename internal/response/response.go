package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvariantViolation = "INVARIANT_VIOLATION"
	ErrCodeStorageCorruption  = "STORAGE_CORRUPTION"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"Not found"`
	Code  string `json:"code" example:"NOT_FOUND"`
}

// SuccessResponse is returned by operations without a resource body
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// AppError is an error carrying a wire code
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewNotFoundError creates the generic not found error
func NewNotFoundError(details string) *AppError {
	return NewAppError(ErrCodeNotFound, "Not found", details)
}

// NewValidationError creates a validation error
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// SendError writes an error body
func SendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message, Code: code})
}

// SendSuccess writes data as the response body
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendOK writes {"success": true}
func SendOK(c *gin.Context, statusCode int) {
	c.JSON(statusCode, SuccessResponse{Success: true})
}

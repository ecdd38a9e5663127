package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried by APIError. The handler maps each onto a problem type.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeValidation     = "VALIDATION_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeGameNotFound   = "GAME_NOT_FOUND"
	CodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
	CodeUpstreamFailed = "FEATURE_STORE_UNAVAILABLE"
	CodeUpstreamSchema = "FEATURE_STORE_SCHEMA"
)

// APIError is an error raised directly by the HTTP layer, with its status
// already decided.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError names the offending query parameter.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors groups every failed parameter of one request.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

var (
	ErrGameNotFound       = New(http.StatusNotFound, CodeGameNotFound, "Game not found")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, CodeUnavailable, "Service temporarily unavailable")
)

// InvalidRequestWithError wraps a malformed request body or query.
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation reports one bad query parameter.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidation, fmt.Sprintf("invalid %s: %s", field, message), ValidationError{
		Field:   field,
		Message: message,
	})
}

// NewValidationErrors reports several bad parameters at once.
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidation,
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}

// FeatureStoreError reports an upstream failure the HTTP layer saw directly.
func FeatureStoreError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, CodeUpstreamFailed, "Feature store could not be fetched", err.Error())
}

package response

import (
	"net/http"

	deliverycontext "todoapp/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`    // HTTP status code
	Message   string     `json:"message"` // User-friendly message
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	RequestID string     `json:"requestId,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "DUPLICATE_EMAIL"
	Details string `json:"details,omitempty"` // Detailed error description
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		Data:      data,
		RequestID: deliverycontext.RequestIDFromEcho(c),
	})
}

// Error error response. Details are dropped for 5xx responses.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if statusCode >= http.StatusInternalServerError {
		details = ""
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		RequestID: deliverycontext.RequestIDFromEcho(c),
	})
}

// BindingError binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, "")
}

// NotFound 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, "")
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}

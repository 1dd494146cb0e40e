package respond

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resumelens-backend/internal/shared/apperror"
	"resumelens-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// AppError maps an application error to the standard response shape.
// Untyped errors surface as internal_error without leaking the cause.
func AppError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)

	message := "Unexpected server error"
	var details interface{}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.Detail != "" {
			details = appErr.Detail
		}
	}
	Error(c, status, string(kind), message, details)
}

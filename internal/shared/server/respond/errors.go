package respond

import (
	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/telemetry"
)

// ErrorResponse is the standardized error payload. Error is always a plain string.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
	// Meta carries non-field context such as quota or retry hints.
	Meta interface{} `json:"meta,omitempty"`
}

// FieldIssue describes one invalid request field.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	write(c, ErrorResponse{Error: message, Code: code, Details: details}, status)
}

// ErrorMeta sends an error response without field details and with meta attached.
func ErrorMeta(c *gin.Context, status int, code, message string, meta interface{}) {
	write(c, ErrorResponse{Error: message, Code: code, Meta: meta}, status)
}

func write(c *gin.Context, body ErrorResponse, status int) {
	code, message := body.Code, body.Error
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if agent := c.GetString("agent"); agent != "" {
		fields["agent"] = agent
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, body)
}

package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response: {success, message?, error?, errors?}
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: false,
		Error:   message,
	})
}

// FieldErrors sends an error response carrying per-field messages
func FieldErrors(c *gin.Context, code int, message string, fields map[string]string) {
	c.JSON(code, Response{
		Success: false,
		Error:   message,
		Errors:  fields,
	})
}

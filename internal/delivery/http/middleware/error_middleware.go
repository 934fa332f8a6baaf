package middleware

import (
	"errors"
	"net/http"

	"quantumworks-backend/internal/delivery/http/response"
	"quantumworks-backend/pkg/apperror"
	"quantumworks-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error. Only the public
// message of an *apperror.AppError reaches the client; causes are logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("Request failed",
					"request_id", requestIDFrom(c),
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", appErr.Err,
				)
			}
			if len(appErr.Fields) > 0 {
				response.FieldErrors(c, appErr.Code, appErr.Message, appErr.Fields)
				return
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("Internal Server Error", "request_id", requestIDFrom(c), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

// MethodNotAllowed is installed as the engine's NoMethod handler
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

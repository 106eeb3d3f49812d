package middleware

import (
	"realty-stream/internal/errors"
	"realty-stream/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorCodeHeader carries the machine-readable code of an error response.
const ErrorCodeHeader = "X-Error-Code"

// ErrorHandler renders the last error attached to the context as
// {"error": <user message>}. Responses that already started are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := errors.MapError(c.Errors.Last().Err)

		logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, code=%s, error=%s",
			c.Request.URL.Path,
			c.Request.Method,
			c.ClientIP(),
			appErr.Code,
			appErr.TechnicalMessage)

		if c.Writer.Written() {
			return
		}
		c.Header(ErrorCodeHeader, appErr.Code)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.UserMessage})
	}
}

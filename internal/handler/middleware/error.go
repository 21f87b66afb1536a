package middleware

import (
	"log/slog"
	"net/http"

	"carrental/internal/handler/httperr"
	"carrental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// stackLogLines bounds how much of a cockroachdb stack render ends up in
// one log record.
const stackLogLines = 20

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 5xx responses carry causes the public envelope hides; log them
		// with the request correlation id before deciding what to write.
		if c.Writer.Status() >= http.StatusInternalServerError && len(c.Errors) > 0 {
			cause := c.Errors[len(c.Errors)-1].Err
			slog.Error("request failed",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", cause,
				"stack", errs.ExtractStackLines(cause, stackLogLines),
			)
		}

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

// CustomRecovery must be the outermost middleware so it catches panics
// from everything below it.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

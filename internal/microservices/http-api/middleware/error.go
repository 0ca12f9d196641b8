package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"giphyexplorer/internal/microservices/http-api/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error recorded on the context into the JSON envelope.
// Handlers only call c.Error and return.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		code, body := apperror.ToResponse(err)

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", code,
			"request_id", RequestIDFrom(c),
			"timestamp", time.Now().UTC().Format(time.RFC3339),
			"error", err.Error(),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request_failed", attrs...)
		} else {
			logger.Warn("request_rejected", attrs...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(code, body)
	}
}

// Recovery converts a panic into the generic internal error envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic_recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		code, body := apperror.ToResponse(nil)
		c.AbortWithStatusJSON(code, body)
	})
}

// NoRoute answers unknown paths with the NotFound envelope.
func NoRoute(c *gin.Context) {
	_ = c.Error(apperror.NewNotFound("Route " + c.Request.URL.Path + " not found"))
}

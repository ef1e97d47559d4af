package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"doulabook/internal/pkg/response"
)

// RequestLogger logs every request with latency and recovers from panics.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
				c.Abort()
			}
		}()

		c.Next()

		ev := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = logger.Error()
		}
		ev.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status()).
			Str("client_ip", c.ClientIP()).
			Int64("user_id", c.GetInt64("user_id")).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

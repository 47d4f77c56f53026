package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request and recovers from panics, answering
// the uniform error envelope. Stack traces are echoed in the response
// only in development.
func RequestLogger(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				stack := debug.Stack()

				log.Error().
					Err(err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Bytes("stack", stack).
					Msg("panic recovered")

				body := gin.H{
					"code":    "internal_error",
					"message": "An unexpected error occurred.",
				}
				if development {
					body["stack"] = string(stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   body,
				})
				return
			}

			event := log.Info()
			if c.Writer.Status() >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Int("status", c.Writer.Status()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Dur("latency", time.Since(start)).
				Msg("request")

			for _, err := range c.Errors {
				log.Error().Err(err.Err).Str("path", c.Request.URL.Path).Msg("handler error")
			}
		}()

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rfpcred/internal/pkg/response"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id, logs every request and recovers from panics.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ContextRequestID, reqID)
		c.Header(requestIDHeader, reqID)

		defer func() {
			if recovered := recover(); recovered != nil {
				logRequest(log.Error(), c, start).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			status := c.Writer.Status()
			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError || len(c.Errors) > 0:
				event = log.Error()
			case status >= http.StatusBadRequest:
				event = log.Warn()
			default:
				event = log.Info()
			}
			if len(c.Errors) > 0 {
				event = event.Str("errors", c.Errors.String())
			}
			logRequest(event, c, start).Msg("request")
		}()

		c.Next()
	}
}

// The raw query is left out: it may carry a bearer token.
func logRequest(e *zerolog.Event, c *gin.Context, start time.Time) *zerolog.Event {
	return e.
		Str("request_id", c.GetString(ContextRequestID)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Str("client_ip", c.ClientIP()).
		Str("user_id", c.GetString(ContextUserID)).
		Dur("latency", time.Since(start))
}

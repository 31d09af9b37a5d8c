package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"offerboard/internal/pkg/response"
)

const requestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs every request and turns panics into a 500 envelope.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.ErrorContext(c.Request.Context(), "panic recovered",
					append(requestAttrs(c, start),
						slog.String("error", fmt.Sprint(recovered)),
						slog.String("stack", string(debug.Stack())),
					)...,
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			attrs := requestAttrs(c, start)
			for _, e := range c.Errors {
				attrs = append(attrs, slog.String("error", e.Error()))
			}

			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				log.ErrorContext(c.Request.Context(), "request failed", attrs...)
			case status >= http.StatusBadRequest:
				log.WarnContext(c.Request.Context(), "request rejected", attrs...)
			default:
				log.InfoContext(c.Request.Context(), "request", attrs...)
			}
		}()

		c.Next()
	}
}

func requestAttrs(c *gin.Context, start time.Time) []any {
	return []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("latency", time.Since(start)),
		slog.String("client_ip", c.ClientIP()),
		slog.Int64("user_id", c.GetInt64(UserIDKey)),
		slog.String("request_id", c.GetString("request_id")),
	}
}

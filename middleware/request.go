package middleware

import (
	"log/slog"
	"time"

	"food-ordering-api/logger"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id, stores it in the request
// context for the services, and writes one access log line when done.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = logger.NewRequestID()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		c.Next()

		log.Info("http_request", requestID, c.Request.Method+" "+c.FullPath(),
			slog.Int("status", c.Writer.Status()),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()))
	}
}

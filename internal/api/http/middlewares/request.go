package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader: идентификатор запроса. Берётся из входящего заголовка или генерируется.
const RequestIDHeader = "X-Request-ID"

// RequestLogger логирует каждый запрос: метод, маршрут, путь, статус, длительность, client IP и
// request id. Ответы 5xx пишутся уровнем Error, 4xx уровнем Warn.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		clientIP := c.ClientIP()
		method := c.Request.Method

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "request",
			"request_id", id,
			"method", method,
			"route", c.FullPath(),
			"path", path,
			"status", status,
			"ip", clientIP,
			"latency_ms", latency.Milliseconds(),
		)
	}
}

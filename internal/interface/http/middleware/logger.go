package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/tracing"
)

// RequestIDHeader 请求ID响应头；客户端带了就沿用
const RequestIDHeader = "X-Request-ID"

// RequestLogger 访问日志
// 1. 生成/透传request_id，写入Context和响应头
// 2. 请求结束后按状态码选择日志级别：5xx error，4xx warn，其余info
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Header(RequestIDHeader, rid)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = logger.Error()
		case status >= 400:
			ev = logger.Warn()
		default:
			ev = logger.Info()
		}

		ev = ev.
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			ev = ev.Str("trace_id", traceID)
		}
		if s := GetSession(c); s.Authenticated() {
			ev = ev.Str("user_id", s.UserID)
		}
		ev.Msg("request")
	}
}

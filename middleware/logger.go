package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger 请求日志中间件
// 正常请求记 Info，4xx 记 Warn，5xx 或 handler 写入了 c.Errors 时记 Error
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
			"bytes":   c.Writer.Size(),
		})

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case status >= 500:
			entry.Error("请求失败")
		case status >= 400:
			entry.Warn("请求被拒绝")
		default:
			entry.Info("请求完成")
		}
	}
}

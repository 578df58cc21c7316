package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wasp/youtube-channel-api/pkg/logger"
)

// RequestLogger logs every request once it has been served.
func RequestLogger() gin.HandlerFunc {
	log := logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Request served", fields...)
		case status >= 400:
			log.Warn("Request served", fields...)
		default:
			log.Info("Request served", fields...)
		}
	}
}

package config

import (
	"time"

	"github.com/gin-gonic/gin"

	"nmalls-recorrencia/logger"
)

const slowRequestThreshold = 200 * time.Millisecond

func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		event := logger.Logger.Info()
		if latency > slowRequestThreshold {
			event = logger.Logger.Warn().Bool("slow", true)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"hotel-storefront/logger"
)

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			log.Warn("%s %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, latency)
			return
		}
		log.Info("%s %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, latency)
	}
}

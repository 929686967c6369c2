package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger registra uma linha por requisição, com o request_id propagado.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("[HTTP] %s %s status=%d request_id=%s latency=%s ip=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			GetRequestID(c),
			time.Since(start).Round(time.Millisecond),
			c.ClientIP(),
		)
	}
}

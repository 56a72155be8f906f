package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one access log line per request once the handler
// chain has finished.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		log.Printf("%s %s %d %s %s",
			c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
		for _, e := range c.Errors {
			log.Printf("  error: %v", e.Err)
		}
	}
}

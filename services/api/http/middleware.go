package http

import "github.com/gin-gonic/gin"

// apiVersionMiddleware tags v1 responses with an X-API-Version header.
func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}

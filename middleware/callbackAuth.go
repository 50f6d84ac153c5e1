package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CallbackTokenHeader carries the shared secret the payment processor
// presents on confirmation callbacks.
const CallbackTokenHeader = "X-Callback-Token"

// CallbackAuthMiddleware guards processor callback endpoints with a shared
// secret. An empty secret means callbacks are not configured, so requests are
// rejected rather than let through unauthenticated.
func CallbackAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "payment callbacks are not configured",
			})
			return
		}
		token := c.GetHeader(CallbackTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

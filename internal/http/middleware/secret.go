package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretTokenHeader is set by Telegram on webhook deliveries when the webhook
// was registered with a secret token.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

func WebhookSecret(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		got := c.GetHeader(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(required)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid webhook secret",
				},
			})
			return
		}
		c.Next()
	}
}

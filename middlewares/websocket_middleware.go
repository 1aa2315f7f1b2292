package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/utils"
)

// WebSocketAuthMiddleware authenticates upgrade requests. Browsers cannot set
// headers on a websocket handshake, so the token may come from ?token=.
func WebSocketAuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization token required"))
			c.Abort()
			return
		}

		if !authenticate(c, tm, token) {
			return
		}
		c.Next()
	}
}

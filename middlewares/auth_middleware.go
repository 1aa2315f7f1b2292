package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware requires a bearer token. A missing token is 401, a token that
// does not verify is 403.
func AuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization token required"))
			c.Abort()
			return
		}

		if !authenticate(c, tm, tokenString) {
			return
		}
		c.Next()
	}
}

// bearerToken returns the credentials of a "Bearer <token>" header. The scheme
// is matched case-insensitively; any other scheme yields "".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func authenticate(c *gin.Context, tm *utils.TokenManager, tokenString string) bool {
	claims, err := tm.ParseToken(tokenString)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		c.Abort()
		return false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	return true
}

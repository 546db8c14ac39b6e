package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openboard/openboard-api/pkg/helpers"
	"github.com/openboard/openboard-api/pkg/response"
)

// Context keys populated by Auth for downstream handlers and gates.
const (
	ContextClaimsKey = "claims"
	ContextEmailKey  = "userEmail"
)

// Auth is the authentication gate. It extracts the bearer token from
// the Authorization header, verifies signature and expiry, and injects
// the decoded claim set into the Gin context. It is applied per route,
// not globally: several read endpoints stay unauthenticated.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFail(c, http.StatusUnauthorized, "missing authorization header", nil)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortFail(c, http.StatusUnauthorized, "invalid authorization format", nil)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "invalid or expired token", err.Error())
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextEmailKey, helpers.ClaimEmail(claims))
		c.Next()
	}
}

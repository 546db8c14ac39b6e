package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openboard/openboard-api/internal/application"
	"github.com/openboard/openboard-api/pkg/response"
)

// RequireAdmin is the authorization gate. It requires Auth to have run
// earlier in the chain; a missing identity means the route is wired
// wrong and is surfaced as a 500, never silently tolerated. Otherwise
// the caller's stored role decides: anything but admin is forbidden.
//
// Role is read from the store on every request, so an already-issued
// token keeps working even if the role changed since issuance. The
// gate reflects the stored role, not the claim.
func RequireAdmin(accounts *application.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextClaimsKey); !ok {
			response.AbortFail(c, http.StatusInternalServerError,
				"authorization gate invoked without prior authentication", nil)
			return
		}

		isAdmin, err := accounts.IsAdmin(c.Request.Context(), c.GetString(ContextEmailKey))
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, "internal error", nil)
			return
		}
		if !isAdmin {
			response.AbortFail(c, http.StatusForbidden, "admin role required", nil)
			return
		}
		c.Next()
	}
}

// RequireSelf rejects requests whose path identity differs from the
// verified claim email. It stops one authenticated user from querying
// another's admin status by substituting the path parameter.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextClaimsKey); !ok {
			response.AbortFail(c, http.StatusInternalServerError,
				"authorization gate invoked without prior authentication", nil)
			return
		}
		if c.Param(param) != c.GetString(ContextEmailKey) {
			response.AbortFail(c, http.StatusForbidden, "forbidden access", nil)
			return
		}
		c.Next()
	}
}

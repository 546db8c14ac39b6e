package middleware

import (
	"github.com/gin-gonic/gin"
)

// RealIP stores the resolved client IP under "real_ip". Resolution goes
// through Gin's ClientIP, which only consults forwarding headers when
// the peer is a trusted proxy, so clients cannot pick their own bucket
// by rotating X-Forwarded-For values.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}

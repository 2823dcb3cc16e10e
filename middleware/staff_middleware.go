package middleware

import (
	"net/http"

	"ibarangay-be/util"

	"github.com/gin-gonic/gin"
)

// StaffOnly must run after AuthMiddleware; it relies on account_type being
// set on the context.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountType := c.GetString("account_type")
		if accountType != "staff" && accountType != "admin" {
			util.ErrorResponse(c, http.StatusForbidden, "Staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

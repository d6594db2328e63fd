package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// RBACMiddleware allows only the listed roles through.
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[submission.NormalizeRole(r)] = true
	}

	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role == "" || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
			return
		}
		c.Next()
	}
}

// StaffOnly restricts a route to reviewing staff.
func StaffOnly() gin.HandlerFunc {
	return RBACMiddleware(submission.RoleAdmin, submission.RoleReviewer)
}

package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuditContext records the caller IP on every request so downstream
// services can attach it to audit entries.
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", extractClientIP(c))
		c.Next()
	}
}

// GetIPFromContext returns the IP stashed by AuditContext, falling back
// to gin's own resolution.
func GetIPFromContext(c *gin.Context) string {
	if v, ok := c.Get("client_ip"); ok {
		if ip, ok := v.(string); ok && ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

func extractClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

func staffRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", submission.NormalizeRole(role))
		}
		c.Next()
	})
	r.GET("/review/summary", StaffOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestStaffOnlyAllowsStaffRoles(t *testing.T) {
	for _, role := range []string{"admin", "reviewer", "ADMIN"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/review/summary", nil)
		staffRouter(role).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestStaffOnlyRejectsApplicants(t *testing.T) {
	for _, role := range []string{"user", ""} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/review/summary", nil)
		staffRouter(role).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "role %q", role)
		assert.Contains(t, w.Body.String(), "Acceso denegado")
	}
}

package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// HistoryMine lists the caller's own trail entries, newest first.
func (h *Handler) HistoryMine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.service.HistoryForUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar historial"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// List is the staff-wide trail listing with filters.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := Filter{
		Scope:  c.Query("scope"),
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	}
	if uid := c.Query("userId"); uid != "" {
		if id, err := strconv.ParseUint(uid, 10, 32); err == nil {
			u := uint(id)
			filter.UserID = &u
		}
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar auditoría"})
		return
	}
	c.JSON(http.StatusOK, result)
}

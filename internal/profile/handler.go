package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
	"github.com/Chelo123Mau/P-RENAPP/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Draft
// ===============================

func (h *Handler) GetDraft(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	data, err := h.service.GetDraft(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al leer borrador"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *Handler) SaveDraft(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	if _, err := h.service.SaveDraft(c.Request.Context(), userID, data, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, submission.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "El registro no admite cambios en su estado actual"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar borrador"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ===============================
// Submit
// ===============================

func (h *Handler) Submit(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	p, err := h.service.Submit(c.Request.Context(), userID, data, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, submission.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "El registro no admite envío en su estado actual"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar registro"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": p.Status, "profile": p})
}

// ===============================
// Effective record
// ===============================

func (h *Handler) Get(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	p, err := h.service.Effective(userID)
	if err != nil {
		if errors.Is(err, ErrNotSubmitted) {
			c.JSON(http.StatusOK, gin.H{"status": submission.StatusNone, "profile": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar registro"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": p.Status, "profile": p})
}

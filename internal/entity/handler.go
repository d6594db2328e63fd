package entity

import (
	"errors"
	"net/http"
	"strconv"

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

	if err := h.service.SaveDraft(c.Request.Context(), userID, data, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar borrador"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ===============================
// Create
// ===============================

type createReq struct {
	DraftKey string                 `json:"draftKey"`
	Data     map[string]interface{} `json:"data" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	e, err := h.service.Create(c.Request.Context(), userID, req.DraftKey, req.Data, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrDuplicateEntity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al registrar entidad"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entity": e})
}

// ===============================
// Mine
// ===============================

func (h *Handler) Mine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	e, err := h.service.Mine(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"entity": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar entidad"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entity": e})
}

// ===============================
// Request change
// ===============================

func (h *Handler) RequestChange(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	entityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	e, err := h.service.RequestChange(c.Request.Context(), userID, uint(entityID), middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotOwner):
			// Another owner's entity reads as missing.
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		case errors.Is(err, submission.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Solo una entidad aprobada admite solicitud de modificación"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al solicitar modificación"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": e.Status})
}

package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
	"github.com/Chelo123Mau/P-RENAPP/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// ===============================
// Pending queues
// ===============================

func (h *Handler) PendingUsers(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.service.PendingUsers(c.Query("status"), c.Query("q"), c.Query("sort"), pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar pendientes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "total": total, "page": page, "pageSize": pageSize})
}

func (h *Handler) PendingEntities(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.service.PendingEntities(c.Query("status"), c.Query("q"), c.Query("sort"), pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar pendientes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "total": total, "page": page, "pageSize": pageSize})
}

func (h *Handler) PendingProjects(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.service.PendingProjects(c.Query("status"), c.Query("q"), c.Query("sort"), pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar pendientes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "total": total, "page": page, "pageSize": pageSize})
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar resumen"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ===============================
// User registry browsing
// ===============================

func (h *Handler) Users(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, total, err := h.service.ListUsers(c.Query("q"), pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar usuarios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "total": total, "page": page, "pageSize": pageSize})
}

func (h *Handler) UserProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	p, decisions, err := h.service.UserProfileByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registro no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar registro"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "decisions": decisions})
}

// ===============================
// Verdicts
// ===============================

type decideReq struct {
	Comment string `json:"comment"`
}

type decideFn func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error)

func (h *Handler) decide(c *gin.Context, ev submission.Event, fn decideFn) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var req decideReq
	_ = c.ShouldBindJSON(&req)
	if ev == submission.EventObserve && req.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La observación requiere un comentario"})
		return
	}

	d, err := fn(c, uint(id), ev, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Registro no encontrado"})
		case errors.Is(err, submission.ErrNotStaff):
			c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
		case errors.Is(err, submission.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "El registro no admite esta decisión en su estado actual"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al registrar decisión"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "decision": d})
}

func (h *Handler) ApproveUser(c *gin.Context) {
	h.decide(c, submission.EventApprove, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideUser(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

func (h *Handler) ObserveUser(c *gin.Context) {
	h.decide(c, submission.EventObserve, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideUser(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

func (h *Handler) ApproveEntity(c *gin.Context) {
	h.decide(c, submission.EventApprove, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideEntity(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

func (h *Handler) ObserveEntity(c *gin.Context) {
	h.decide(c, submission.EventObserve, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideEntity(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

func (h *Handler) ApproveProject(c *gin.Context) {
	h.decide(c, submission.EventApprove, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideProject(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

func (h *Handler) ObserveProject(c *gin.Context) {
	h.decide(c, submission.EventObserve, func(c *gin.Context, id uint, ev submission.Event, comment string) (*Decision, error) {
		return h.service.DecideProject(c.Request.Context(), id, ev, middleware.CurrentRole(c), middleware.CurrentUserID(c), comment, middleware.GetIPFromContext(c))
	})
}

// ===============================
// Decision history
// ===============================

func (h *Handler) Decisions(c *gin.Context) {
	scope := c.Query("scope")
	refID, err := strconv.ParseUint(c.Query("refId"), 10, 32)
	if err != nil || scope == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan scope o refId"})
		return
	}

	decisions, err := h.service.Decisions(scope, uint(refID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al consultar decisiones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

// ===============================
// Registry export
// ===============================

func (h *Handler) Export(c *gin.Context) {
	registry := c.Param("registry")
	format := c.DefaultQuery("format", "csv")

	data, filename, contentType, err := h.service.ExportRegistry(registry, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

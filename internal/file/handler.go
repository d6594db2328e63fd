package file

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Upload
// ===============================

// Upload receives multipart form field "files" plus draftKey, optional
// fieldKey and docType. Files stay linked to the draft key until the
// owning record is created.
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	draftKey := c.PostForm("draftKey")
	if draftKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta draftKey"})
		return
	}

	var fieldKey *string
	if fk := c.PostForm("fieldKey"); fk != "" {
		fieldKey = &fk
	}
	docType := c.PostForm("docType")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulario inválido"})
		return
	}
	headers := form.File["files"]

	saved, err := h.service.SaveUploads(c.Request.Context(), userID, draftKey, fieldKey, docType, headers)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFiles), errors.Is(err, ErrTooManyFiles), errors.Is(err, ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron guardar los archivos"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "files": saved})
}

// ===============================
// Listings
// ===============================

func (h *Handler) ListDrafts(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	draftKey := c.Query("draftKey")
	if draftKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta draftKey"})
		return
	}

	files, err := h.service.ListDrafts(userID, draftKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al listar archivos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// UserDocuments lists every document an applicant has uploaded,
// optionally filtered by docType.
func (h *Handler) UserDocuments(c *gin.Context) {
	h.listForTarget(c, h.service.ListForUser)
}

// EntityDocuments lists the documents attached to an entity.
func (h *Handler) EntityDocuments(c *gin.Context) {
	h.listForTarget(c, h.service.ListForEntity)
}

// ProjectDocuments lists the documents attached to a project.
func (h *Handler) ProjectDocuments(c *gin.Context) {
	h.listForTarget(c, h.service.ListForProject)
}

func (h *Handler) listForTarget(c *gin.Context, list func(id uint, docType string) ([]File, error)) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	docType := c.Query("docType")
	switch docType {
	case "", DocTypeUsuario, DocTypeEntidad, DocTypeProyecto:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "docType inválido"})
		return
	}

	files, err := list(uint(id), docType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al listar documentos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// ListByDocType is the staff document registry, filtered per scope.
func (h *Handler) ListByDocType(c *gin.Context) {
	docType := c.Query("docType")
	switch docType {
	case DocTypeUsuario, DocTypeEntidad, DocTypeProyecto:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "docType inválido"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	files, total, err := h.service.ListByDocType(docType, pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al listar documentos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files":    files,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
)

type Handler struct {
	blobs storage.Store
}

func NewHandler(blobs storage.Store) *Handler {
	return &Handler{blobs: blobs}
}

type generateReq struct {
	Title    string                 `json:"title" binding:"required"`
	Snapshot map[string]interface{} `json:"snapshot" binding:"required"`
}

// Generate renders the snapshot as a PDF, stores it and returns the
// public URL.
func (h *Handler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	data, err := Render(req.Title, req.Snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar PDF"})
		return
	}

	obj, err := h.blobs.Put(c.Request.Context(), data, "reporte.pdf", "application/pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar PDF"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pdfUrl": obj.URL})
}

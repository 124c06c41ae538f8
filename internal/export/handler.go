package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legaldocs-backend/internal/shared/server/respond"
)

// Handler serves the XLSX register download.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	data, err := h.Svc.DocumentsXLSX(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "export failed", nil)
		return
	}

	fileName := fmt.Sprintf("documents-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

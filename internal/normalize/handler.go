package normalize

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"legaldocs-backend/internal/documents"
	"legaldocs-backend/internal/shared/server/respond"
)

// Handler exposes the normalizer over HTTP.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches normalizer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/normalize", h.normalizeAll)
	rg.POST("/documents/:id/normalize", h.normalizeOne)
}

func (h *Handler) normalizeOne(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document id", nil)
		return
	}
	dryRun := c.Query("dryRun") == "true"
	details := c.Query("details") == "true"

	report, err := h.Svc.NormalizeOne(c.Request.Context(), id, dryRun, details)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "normalization failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, report)
}

type batchRequest struct {
	DryRun         bool `json:"dryRun"`
	Limit          int  `json:"limit"`
	LegacyMetadata bool `json:"legacyMetadata"`
	LegacyAreaData bool `json:"legacyAreaData"`
	IncludeDetails bool `json:"includeDetails"`
}

func (h *Handler) normalizeAll(c *gin.Context) {
	var req batchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	if req.Limit < 0 {
		req.Limit = 0
	}

	summary, err := h.Svc.NormalizeAll(c.Request.Context(), Options{
		DryRun:         req.DryRun,
		Limit:          req.Limit,
		LegacyMetadata: req.LegacyMetadata,
		LegacyAreaData: req.LegacyAreaData,
		IncludeDetails: req.IncludeDetails,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "normalization failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, summary)
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/service/crops"
)

// CropService is the slice of the crop service the handler consumes.
type CropService interface {
	Create(ctx context.Context, crop *models.Crop) (*models.CropSummary, error)
	Update(ctx context.Context, idHex string, crop *models.Crop) (*models.CropSummary, error)
	Get(ctx context.Context, idHex string) (*models.Crop, error)
	List(ctx context.Context) ([]models.Crop, error)
	Delete(ctx context.Context, idHex string) error
	FindByFarmer(ctx context.Context, aadhar string) ([]models.Crop, error)
	LatestUpdated(ctx context.Context, limit int64) ([]models.CropFeedItem, error)
	Stats(ctx context.Context, aadhar string) (models.CropStats, error)
}

// CropExporter appends crop summaries to the configured spreadsheet. Nil when
// export is not configured.
type CropExporter interface {
	AppendCropSummary(ctx context.Context, summary models.CropSummary) error
}

// CropHandler adapts the crop service to HTTP.
type CropHandler struct {
	svc      CropService
	exporter CropExporter
	logger   *zap.Logger
}

// NewCropHandler constructs the HTTP handler adapter. exporter may be nil.
func NewCropHandler(svc CropService, exporter CropExporter, logger *zap.Logger) *CropHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CropHandler{svc: svc, exporter: exporter, logger: logger}
}

// Create handles POST /crops. Responds with the summary projection.
func (h *CropHandler) Create(c *gin.Context) {
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid crop payload: %s", err.Error()))
		return
	}

	summary, err := h.svc.Create(c.Request.Context(), &crop)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, summary, "crop created")
}

// Update handles PUT /crops/:id. Wholesale replacement; responds with the
// summary projection.
func (h *CropHandler) Update(c *gin.Context) {
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid crop payload: %s", err.Error()))
		return
	}

	summary, err := h.svc.Update(c.Request.Context(), c.Param("id"), &crop)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, summary, "crop updated")
}

// Get handles GET /crops/:id. Responds with the full document.
func (h *CropHandler) Get(c *gin.Context) {
	crop, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, crop, "")
}

// List handles GET /crops.
func (h *CropHandler) List(c *gin.Context) {
	crops, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, crops, "")
}

// Delete handles DELETE /crops/:id.
func (h *CropHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "crop deleted")
}

// FindByFarmer handles GET /crops/farmer/:aadhar.
func (h *CropHandler) FindByFarmer(c *gin.Context) {
	crops, err := h.svc.FindByFarmer(c.Request.Context(), c.Param("aadhar"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, crops, "")
}

// LatestUpdated handles GET /crops/feed/latest?limit=N.
func (h *CropHandler) LatestUpdated(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, h.logger, apperr.Validation("limit must be an integer"))
			return
		}
		limit = parsed
	}

	items, err := h.svc.LatestUpdated(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, items, "")
}

// Stats handles GET /crops/stats?aadhar=X.
func (h *CropHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("aadhar"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, stats, "")
}

// Export handles POST /crops/export?aadhar=X, appending one summary row per
// matching crop to the spreadsheet.
func (h *CropHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		respondError(c, h.logger, apperr.Validation("spreadsheet export is not configured"))
		return
	}

	aadhar := c.Query("aadhar")

	var (
		cropList []models.Crop
		err      error
	)
	if aadhar != "" {
		cropList, err = h.svc.FindByFarmer(c.Request.Context(), aadhar)
	} else {
		cropList, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	exported := 0
	for i := range cropList {
		summary := crops.Summarize(&cropList[i])
		if err := h.exporter.AppendCropSummary(c.Request.Context(), summary); err != nil {
			h.logger.Error("failed to export crop row", zap.String("id", cropList[i].ID.Hex()), zap.Error(err))
			continue
		}
		exported++
	}

	respond(c, http.StatusOK, gin.H{"exported": exported, "total": len(cropList)}, "export completed")
}

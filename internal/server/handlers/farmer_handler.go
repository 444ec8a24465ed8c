package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// FarmerService is the slice of the farmer service the handler consumes.
type FarmerService interface {
	Create(ctx context.Context, farmer *models.Farmer) (*models.Farmer, error)
	List(ctx context.Context) ([]models.Farmer, error)
	Get(ctx context.Context, aadhar string) (*models.Farmer, error)
	Update(ctx context.Context, aadhar string, farmer *models.Farmer) (*models.Farmer, error)
	Delete(ctx context.Context, aadhar string) error
}

// FarmerHandler adapts the farmer service to HTTP.
type FarmerHandler struct {
	svc    FarmerService
	logger *zap.Logger
}

// NewFarmerHandler constructs the HTTP handler adapter.
func NewFarmerHandler(svc FarmerService, logger *zap.Logger) *FarmerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmerHandler{svc: svc, logger: logger}
}

// Create handles POST /farmers.
func (h *FarmerHandler) Create(c *gin.Context) {
	var farmer models.Farmer
	if err := c.ShouldBindJSON(&farmer); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid farmer payload: %s", err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &farmer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, created, "farmer registered")
}

// List handles GET /farmers.
func (h *FarmerHandler) List(c *gin.Context) {
	farmers, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, farmers, "")
}

// Get handles GET /farmers/:aadhar.
func (h *FarmerHandler) Get(c *gin.Context) {
	farmer, err := h.svc.Get(c.Request.Context(), c.Param("aadhar"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, farmer, "")
}

// Update handles PUT /farmers/:aadhar.
func (h *FarmerHandler) Update(c *gin.Context) {
	var farmer models.Farmer
	if err := c.ShouldBindJSON(&farmer); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid farmer payload: %s", err.Error()))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("aadhar"), &farmer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, updated, "farmer updated")
}

// Delete handles DELETE /farmers/:aadhar.
func (h *FarmerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("aadhar")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "farmer deleted")
}

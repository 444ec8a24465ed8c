package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// ReportService is the slice of the reporting service the handler consumes.
type ReportService interface {
	RunDailySnapshot(ctx context.Context, asOf time.Time) (models.DailyReport, error)
	History(ctx context.Context, limit int64) ([]models.DailyReport, error)
}

// ReportHandler exposes stored daily snapshots and an on-demand trigger.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// History handles GET /reports/daily?limit=N.
func (h *ReportHandler) History(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, h.logger, apperr.Validation("limit must be an integer"))
			return
		}
		limit = parsed
	}

	reports, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, reports, "")
}

// Run handles POST /reports/daily/run, triggering a snapshot immediately.
func (h *ReportHandler) Run(c *gin.Context) {
	report, err := h.svc.RunDailySnapshot(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, report, "daily snapshot generated")
}

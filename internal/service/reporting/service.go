// Package reporting assembles the daily farm-wide snapshot: crop statistics,
// farmer count and the day's transaction volume, persisted for trend history
// and optionally exported to a spreadsheet and pushed to a webhook.
package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/repository/mongodb"
	"github.com/agridesk/farmbook/internal/repository/sheets"
	"github.com/agridesk/farmbook/pkg/clients/webhook"
)

// Repository is the slice of storage the reporting service needs.
type Repository interface {
	mongodb.ReportRepository
	CropStats(ctx context.Context, aadhar string) (models.CropStats, error)
	CountFarmers(ctx context.Context) (int64, error)
	TransactionVolumeSince(ctx context.Context, since time.Time) (int64, float64, error)
}

// Service generates and distributes daily reports. The sheets repository and
// webhook client are optional; nil disables that output.
type Service struct {
	repo       Repository
	sheetsRepo sheets.Repository
	webhook    webhook.Client
	logger     *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repo Repository, sheetsRepo sheets.Repository, webhookClient webhook.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sheetsRepo: sheetsRepo, webhook: webhookClient, logger: logger}
}

// GenerateDailyReport composes the snapshot for the calendar day containing
// asOf. Transaction volume covers midnight UTC to asOf.
func (s *Service) GenerateDailyReport(ctx context.Context, asOf time.Time) (models.DailyReport, error) {
	asOf = asOf.UTC()
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.repo.CropStats(ctx, "")
	if err != nil {
		return models.DailyReport{}, err
	}

	farmerCount, err := s.repo.CountFarmers(ctx)
	if err != nil {
		return models.DailyReport{}, err
	}

	txnCount, txnVolume, err := s.repo.TransactionVolumeSince(ctx, dayStart)
	if err != nil {
		return models.DailyReport{}, err
	}

	return models.DailyReport{
		Date:              dayStart,
		TotalFarmers:      farmerCount,
		Crops:             stats,
		TransactionCount:  txnCount,
		TransactionVolume: txnVolume,
		CreatedAt:         asOf,
	}, nil
}

// RunDailySnapshot generates, persists and distributes the report. Export and
// push failures are logged, not fatal: the persisted snapshot is the source
// of truth.
func (s *Service) RunDailySnapshot(ctx context.Context, asOf time.Time) (models.DailyReport, error) {
	report, err := s.GenerateDailyReport(ctx, asOf)
	if err != nil {
		return models.DailyReport{}, err
	}

	if err := s.repo.SaveDailyReport(ctx, report); err != nil {
		return models.DailyReport{}, err
	}

	if s.sheetsRepo != nil {
		if err := s.sheetsRepo.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to export daily report to sheet", zap.Error(err))
		}
	}

	if s.webhook != nil {
		if err := s.webhook.PushDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to push daily report to webhook", zap.Error(err))
		}
	}

	s.logger.Info("daily snapshot completed",
		zap.Time("date", report.Date),
		zap.Int64("totalCrops", report.Crops.TotalCrops),
		zap.Int64("totalFarmers", report.TotalFarmers))

	return report, nil
}

// History returns the most recent stored snapshots, newest first.
func (s *Service) History(ctx context.Context, limit int64) ([]models.DailyReport, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.repo.ListDailyReports(ctx, limit)
}

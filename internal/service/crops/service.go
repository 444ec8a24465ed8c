// Package crops implements the crop record lifecycle: validation of the
// embedded farmer snapshot, unconditional derivation of financial totals
// before every persist, and the read-side query paths.
package crops

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/domain/validation"
	"github.com/agridesk/farmbook/internal/repository/mongodb"
)

const (
	maxTextFieldLen  = 100
	defaultFeedLimit = 15
	maxFeedLimit     = 50
)

// Service owns the crop lifecycle and its query paths.
type Service struct {
	repo   mongodb.CropRepository
	logger *zap.Logger
}

// NewService wires a new crop service instance.
func NewService(repo mongodb.CropRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates, derives totals and persists a new crop, returning the
// summary projection. The referenced farmer's existence is deliberately not
// checked: farmerDetails is a point-in-time snapshot, validated by shape only.
func (s *Service) Create(ctx context.Context, crop *models.Crop) (*models.CropSummary, error) {
	if err := validateCrop(crop); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	normalizeCrop(crop)
	deriveTotals(crop)
	crop.Status = defaultStatus(crop.Status)
	crop.CreatedAt = now
	crop.UpdatedAt = now
	crop.LatestUpdate = &models.LatestUpdate{Date: now, Note: "created"}

	if err := s.repo.InsertCrop(ctx, crop); err != nil {
		return nil, err
	}

	s.logger.Info("crop created",
		zap.String("id", crop.ID.Hex()),
		zap.String("aadhar", crop.FarmerDetails.Aadhar),
		zap.Float64("netProfit", crop.NetProfit))

	summary := Summarize(crop)
	return &summary, nil
}

// Update replaces a crop document wholesale: scalar fields and entry arrays
// from the request overwrite what is stored, never merge with it. Totals are
// recomputed from the incoming arrays regardless of what the client sent.
// Last writer wins; no concurrency token is checked.
func (s *Service) Update(ctx context.Context, idHex string, crop *models.Crop) (*models.CropSummary, error) {
	id, err := parseCropID(idHex)
	if err != nil {
		return nil, err
	}

	if err := validateCrop(crop); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetCropByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	normalizeCrop(crop)
	deriveTotals(crop)
	crop.ID = id
	crop.Status = defaultStatus(crop.Status)
	crop.CreatedAt = existing.CreatedAt
	crop.UpdatedAt = now
	crop.LatestUpdate = &models.LatestUpdate{Date: now, Note: "updated"}

	if err := s.repo.ReplaceCrop(ctx, id, crop); err != nil {
		return nil, err
	}

	s.logger.Info("crop updated", zap.String("id", idHex))

	summary := Summarize(crop)
	return &summary, nil
}

// Get returns the full crop document; totals are whatever was last persisted.
func (s *Service) Get(ctx context.Context, idHex string) (*models.Crop, error) {
	id, err := parseCropID(idHex)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCropByID(ctx, id)
}

// List returns all crop documents.
func (s *Service) List(ctx context.Context) ([]models.Crop, error) {
	return s.repo.ListCrops(ctx)
}

// Delete removes a crop outright. There is no soft delete.
func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := parseCropID(idHex)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCrop(ctx, id); err != nil {
		return err
	}
	s.logger.Info("crop deleted", zap.String("id", idHex))
	return nil
}

// FindByFarmer returns all crops whose embedded snapshot matches the aadhar.
// The identifier shape is validated before touching storage.
func (s *Service) FindByFarmer(ctx context.Context, aadhar string) ([]models.Crop, error) {
	if !validation.IsAadhar(aadhar) {
		return nil, apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	return s.repo.FindCropsByFarmerAadhar(ctx, aadhar)
}

// LatestUpdated returns the dashboard feed of most recently written crops.
// A non-positive limit falls back to the default; the limit is capped.
func (s *Service) LatestUpdated(ctx context.Context, limit int64) ([]models.CropFeedItem, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.repo.LatestUpdatedCrops(ctx, limit)
}

// Stats aggregates crop figures, optionally scoped to one farmer. An empty
// aadhar means farm-wide; a malformed one is rejected before querying.
func (s *Service) Stats(ctx context.Context, aadhar string) (models.CropStats, error) {
	if aadhar != "" && !validation.IsAadhar(aadhar) {
		return models.CropStats{}, apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	return s.repo.CropStats(ctx, aadhar)
}

func parseCropID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid crop id %q", idHex)
	}
	return id, nil
}

func validateCrop(crop *models.Crop) error {
	if crop == nil {
		return apperr.Validation("request body is required")
	}

	if !validation.IsAadhar(crop.FarmerDetails.Aadhar) {
		return apperr.InvalidFarmerReference("farmerDetails with a 12-digit aadhar is required")
	}

	if len(crop.SeedType) > maxTextFieldLen {
		return apperr.Validation("seedType must not exceed %d characters", maxTextFieldLen)
	}
	if len(crop.Region) > maxTextFieldLen {
		return apperr.Validation("region must not exceed %d characters", maxTextFieldLen)
	}
	if crop.Acres < 0 {
		return apperr.Validation("acres must not be negative")
	}
	if crop.MalePackets < 0 || crop.FemalePackets < 0 {
		return apperr.Validation("packet counts must not be negative")
	}
	if crop.Status != "" && !models.ValidCropStatus(crop.Status) {
		return apperr.Validation("status must be one of active, completed, archived")
	}

	for i, entry := range crop.PaymentEntries {
		if entry.Method != "" && !models.ValidPaymentMethod(entry.Method) {
			return apperr.Validation("paymentEntries[%d].method %q is not an accepted payment method", i, entry.Method)
		}
	}

	return nil
}

// normalizeCrop applies schema defaults and precision rules: nil entry arrays
// become empty, coolie days default to 1, payment method defaults to Cash,
// acres rounds to 2 decimals.
func normalizeCrop(crop *models.Crop) {
	if crop.PesticideEntries == nil {
		crop.PesticideEntries = []models.PesticideEntry{}
	}
	if crop.CoolieEntries == nil {
		crop.CoolieEntries = []models.CoolieEntry{}
	}
	if crop.PaymentEntries == nil {
		crop.PaymentEntries = []models.PaymentEntry{}
	}

	for i := range crop.CoolieEntries {
		if crop.CoolieEntries[i].Days <= 0 {
			crop.CoolieEntries[i].Days = 1
		}
	}
	for i := range crop.PaymentEntries {
		if crop.PaymentEntries[i].Method == "" {
			crop.PaymentEntries[i].Method = models.PaymentMethodCash
		}
	}

	crop.Acres = math.Round(crop.Acres*100) / 100
}

// deriveTotals overwrites the derived fields from the current entry arrays.
// Runs before every persist so no write path can leave them stale.
func deriveTotals(crop *models.Crop) {
	totals := ComputeTotals(crop.PesticideEntries, crop.CoolieEntries, crop.PaymentEntries)
	crop.TotalPesticideCost = totals.Pesticide
	crop.TotalCoolieCost = totals.Coolie
	crop.TotalPaymentAmount = totals.Payment
	crop.NetProfit = NetProfit(crop.TotalIncome, totals)
}

func defaultStatus(status string) string {
	if status == "" {
		return models.CropStatusActive
	}
	return status
}

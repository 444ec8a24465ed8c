// Package farmers implements the farmer registry. Aadhar is the natural key;
// duplicate detection relies on the storage layer's unique indexes so a
// pre-check racing another insert still fails cleanly.
package farmers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/domain/validation"
	"github.com/agridesk/farmbook/internal/repository/mongodb"
)

// Service owns farmer CRUD.
type Service struct {
	repo   mongodb.FarmerRepository
	logger *zap.Logger
}

// NewService wires a new farmer service instance.
func NewService(repo mongodb.FarmerRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create registers a new farmer. Identifier shapes are validated here as well
// as at binding, so the service is safe to call from non-HTTP paths.
func (s *Service) Create(ctx context.Context, farmer *models.Farmer) (*models.Farmer, error) {
	if err := validateFarmer(farmer); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	farmer.CreatedAt = now
	farmer.UpdatedAt = now

	if err := s.repo.InsertFarmer(ctx, farmer); err != nil {
		return nil, err
	}

	s.logger.Info("farmer registered",
		zap.String("aadhar", farmer.Aadhar),
		zap.String("village", farmer.Village))
	return farmer, nil
}

// List returns all registered farmers.
func (s *Service) List(ctx context.Context) ([]models.Farmer, error) {
	return s.repo.ListFarmers(ctx)
}

// Get fetches one farmer by aadhar.
func (s *Service) Get(ctx context.Context, aadhar string) (*models.Farmer, error) {
	if !validation.IsAadhar(aadhar) {
		return nil, apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	return s.repo.GetFarmerByAadhar(ctx, aadhar)
}

// Update replaces the farmer document identified by aadhar. Crops created
// before the update keep their embedded snapshot unchanged.
func (s *Service) Update(ctx context.Context, aadhar string, farmer *models.Farmer) (*models.Farmer, error) {
	if !validation.IsAadhar(aadhar) {
		return nil, apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	if err := validateFarmer(farmer); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetFarmerByAadhar(ctx, aadhar)
	if err != nil {
		return nil, err
	}

	farmer.ID = existing.ID
	farmer.CreatedAt = existing.CreatedAt
	farmer.UpdatedAt = time.Now().UTC()

	if err := s.repo.ReplaceFarmerByAadhar(ctx, aadhar, farmer); err != nil {
		return nil, err
	}

	s.logger.Info("farmer updated", zap.String("aadhar", aadhar))
	return farmer, nil
}

// Delete removes one farmer. Existing crops keep their snapshot.
func (s *Service) Delete(ctx context.Context, aadhar string) error {
	if !validation.IsAadhar(aadhar) {
		return apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	if err := s.repo.DeleteFarmerByAadhar(ctx, aadhar); err != nil {
		return err
	}
	s.logger.Info("farmer deleted", zap.String("aadhar", aadhar))
	return nil
}

func validateFarmer(farmer *models.Farmer) error {
	if farmer == nil {
		return apperr.Validation("request body is required")
	}
	if farmer.FirstName == "" || farmer.LastName == "" {
		return apperr.Validation("firstName and lastName are required")
	}
	if !validation.IsAadhar(farmer.Aadhar) {
		return apperr.Validation("aadhar must be a 12-digit numeric string")
	}
	if !validation.IsMobile(farmer.Mobile) {
		return apperr.Validation("mobile must be a 10-digit numeric string")
	}
	if !validation.IsBankAccount(farmer.BankAccountNumber) {
		return apperr.Validation("bankAccountNumber must be a 9 to 18 digit numeric string")
	}
	if farmer.Village == "" {
		return apperr.Validation("village is required")
	}
	return nil
}

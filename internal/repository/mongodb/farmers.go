package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// FarmerRepository is the storage contract consumed by the farmer service.
type FarmerRepository interface {
	InsertFarmer(ctx context.Context, farmer *models.Farmer) error
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
	GetFarmerByAadhar(ctx context.Context, aadhar string) (*models.Farmer, error)
	ReplaceFarmerByAadhar(ctx context.Context, aadhar string, farmer *models.Farmer) error
	DeleteFarmerByAadhar(ctx context.Context, aadhar string) error
	CountFarmers(ctx context.Context) (int64, error)
}

// InsertFarmer stores a new farmer. A unique-index collision on aadhar or
// bankAccountNumber surfaces as a duplicate-key error even when a pre-check
// raced with another insert.
func (r *Repository) InsertFarmer(ctx context.Context, farmer *models.Farmer) error {
	res, err := r.collection(farmersCollection).InsertOne(ctx, farmer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("farmer with this aadhar or bank account already exists", err)
		}
		return apperr.Storage("failed to insert farmer", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		farmer.ID = oid
	}
	return nil
}

// ListFarmers returns all farmers ordered by creation time descending.
func (r *Repository) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(farmersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list farmers", err)
	}
	defer cursor.Close(ctx)

	farmers := make([]models.Farmer, 0)
	if err := cursor.All(ctx, &farmers); err != nil {
		return nil, apperr.Storage("failed to decode farmers", err)
	}
	return farmers, nil
}

// GetFarmerByAadhar fetches one farmer by the natural key.
func (r *Repository) GetFarmerByAadhar(ctx context.Context, aadhar string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.collection(farmersCollection).FindOne(ctx, bson.M{"aadhar": aadhar}).Decode(&farmer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("farmer with aadhar %s not found", aadhar)
		}
		return nil, apperr.Storage("failed to fetch farmer", err)
	}
	return &farmer, nil
}

// ReplaceFarmerByAadhar overwrites the farmer document identified by aadhar.
func (r *Repository) ReplaceFarmerByAadhar(ctx context.Context, aadhar string, farmer *models.Farmer) error {
	res, err := r.collection(farmersCollection).ReplaceOne(ctx, bson.M{"aadhar": aadhar}, farmer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate("another farmer already uses this aadhar or bank account", err)
		}
		return apperr.Storage("failed to update farmer", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("farmer with aadhar %s not found", aadhar)
	}
	return nil
}

// DeleteFarmerByAadhar removes the farmer document identified by aadhar.
func (r *Repository) DeleteFarmerByAadhar(ctx context.Context, aadhar string) error {
	res, err := r.collection(farmersCollection).DeleteOne(ctx, bson.M{"aadhar": aadhar})
	if err != nil {
		return apperr.Storage("failed to delete farmer", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("farmer with aadhar %s not found", aadhar)
	}
	return nil
}

// CountFarmers returns the total number of registered farmers.
func (r *Repository) CountFarmers(ctx context.Context) (int64, error) {
	count, err := r.collection(farmersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Storage(fmt.Sprintf("failed to count %s", farmersCollection), err)
	}
	return count, nil
}

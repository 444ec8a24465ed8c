package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// CropRepository is the storage contract consumed by the crop service.
type CropRepository interface {
	InsertCrop(ctx context.Context, crop *models.Crop) error
	ListCrops(ctx context.Context) ([]models.Crop, error)
	GetCropByID(ctx context.Context, id primitive.ObjectID) (*models.Crop, error)
	ReplaceCrop(ctx context.Context, id primitive.ObjectID, crop *models.Crop) error
	DeleteCrop(ctx context.Context, id primitive.ObjectID) error
	FindCropsByFarmerAadhar(ctx context.Context, aadhar string) ([]models.Crop, error)
	LatestUpdatedCrops(ctx context.Context, limit int64) ([]models.CropFeedItem, error)
	CropStats(ctx context.Context, aadhar string) (models.CropStats, error)
}

// InsertCrop stores a new crop document and backfills the generated id.
func (r *Repository) InsertCrop(ctx context.Context, crop *models.Crop) error {
	res, err := r.collection(cropsCollection).InsertOne(ctx, crop)
	if err != nil {
		return apperr.Storage("failed to insert crop", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		crop.ID = oid
	}
	return nil
}

// ListCrops returns all crop documents ordered by creation time descending.
func (r *Repository) ListCrops(ctx context.Context) ([]models.Crop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(cropsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list crops", err)
	}
	defer cursor.Close(ctx)

	crops := make([]models.Crop, 0)
	if err := cursor.All(ctx, &crops); err != nil {
		return nil, apperr.Storage("failed to decode crops", err)
	}
	return crops, nil
}

// GetCropByID fetches one crop document.
func (r *Repository) GetCropByID(ctx context.Context, id primitive.ObjectID) (*models.Crop, error) {
	var crop models.Crop
	err := r.collection(cropsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&crop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("crop %s not found", id.Hex())
		}
		return nil, apperr.Storage("failed to fetch crop", err)
	}
	return &crop, nil
}

// ReplaceCrop overwrites a crop document wholesale. Entry arrays are replaced,
// never merged; the caller must have recomputed derived totals first.
func (r *Repository) ReplaceCrop(ctx context.Context, id primitive.ObjectID, crop *models.Crop) error {
	res, err := r.collection(cropsCollection).ReplaceOne(ctx, bson.M{"_id": id}, crop)
	if err != nil {
		return apperr.Storage("failed to update crop", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("crop %s not found", id.Hex())
	}
	return nil
}

// DeleteCrop removes a crop document outright.
func (r *Repository) DeleteCrop(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(cropsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storage("failed to delete crop", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("crop %s not found", id.Hex())
	}
	return nil
}

// FindCropsByFarmerAadhar returns all crops whose embedded snapshot carries
// the given aadhar. Totals are returned as last persisted; the derivation
// engine does not re-run on reads.
func (r *Repository) FindCropsByFarmerAadhar(ctx context.Context, aadhar string) ([]models.Crop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(cropsCollection).Find(ctx, bson.M{"farmerDetails.aadhar": aadhar}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to query crops by farmer", err)
	}
	defer cursor.Close(ctx)

	crops := make([]models.Crop, 0)
	if err := cursor.All(ctx, &crops); err != nil {
		return nil, apperr.Storage("failed to decode crops", err)
	}
	return crops, nil
}

// LatestUpdatedCrops returns the most recently touched crops that carry a
// latestUpdate.date, newest first, with a restricted projection for feed
// display.
func (r *Repository) LatestUpdatedCrops(ctx context.Context, limit int64) ([]models.CropFeedItem, error) {
	filter := bson.M{"latestUpdate.date": bson.M{"$exists": true}}
	opts := options.Find().
		SetSort(bson.D{{Key: "latestUpdate.date", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{
			"farmerDetails": 1,
			"seedType":      1,
			"region":        1,
			"status":        1,
			"latestUpdate":  1,
		})

	cursor, err := r.collection(cropsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage("failed to query latest updated crops", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.CropFeedItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Storage("failed to decode crop feed", err)
	}
	return items, nil
}

// CropStats runs the grouping aggregation over crops, optionally scoped to
// one farmer. No matching documents yields a zero-valued result.
func (r *Repository) CropStats(ctx context.Context, aadhar string) (models.CropStats, error) {
	match := bson.M{}
	if aadhar != "" {
		match["farmerDetails.aadhar"] = aadhar
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalCrops":    bson.M{"$sum": 1},
			"totalAcres":    bson.M{"$sum": "$acres"},
			"totalIncome":   bson.M{"$sum": "$totalIncome"},
			"totalYield":    bson.M{"$sum": "$yield"},
			"averageProfit": bson.M{"$avg": "$netProfit"},
			"activeCrops": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CropStatusActive}}, 1, 0},
			}},
		}}},
	}

	cursor, err := r.collection(cropsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return models.CropStats{}, apperr.Storage("failed to aggregate crop stats", err)
	}
	defer cursor.Close(ctx)

	var results []models.CropStats
	if err := cursor.All(ctx, &results); err != nil {
		return models.CropStats{}, apperr.Storage("failed to decode crop stats", err)
	}
	if len(results) == 0 {
		return models.CropStats{}, nil
	}
	return results[0], nil
}

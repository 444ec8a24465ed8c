package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// ReportRepository is the storage contract consumed by the reporting service.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	ListDailyReports(ctx context.Context, limit int64) ([]models.DailyReport, error)
}

// SaveDailyReport persists one end-of-day snapshot.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := r.collection(reportsCollection).InsertOne(ctx, report); err != nil {
		return apperr.Storage("failed to insert daily report", err)
	}
	return nil
}

// ListDailyReports returns the most recent snapshots, newest first.
func (r *Repository) ListDailyReports(ctx context.Context, limit int64) ([]models.DailyReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection(reportsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list daily reports", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.DailyReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, apperr.Storage("failed to decode daily reports", err)
	}
	return reports, nil
}

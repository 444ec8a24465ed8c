package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// TransactionRepository is the storage contract consumed by the ledger service.
type TransactionRepository interface {
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	ReplaceTransaction(ctx context.Context, id primitive.ObjectID, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, id primitive.ObjectID) error
	FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	AccountTotals(ctx context.Context, accountNumber string) (models.AccountTotals, error)
	TransactionVolumeSince(ctx context.Context, since time.Time) (int64, float64, error)
}

// InsertTransaction stores a new ledger entry and backfills the generated id.
func (r *Repository) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := r.collection(transactionsCollection).InsertOne(ctx, txn)
	if err != nil {
		return apperr.Storage("failed to insert transaction", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		txn.ID = oid
	}
	return nil
}

// ListTransactions returns all ledger entries ordered by date descending.
func (r *Repository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection(transactionsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list transactions", err)
	}
	defer cursor.Close(ctx)

	txns := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, apperr.Storage("failed to decode transactions", err)
	}
	return txns, nil
}

// GetTransactionByID fetches one ledger entry.
func (r *Repository) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.collection(transactionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("transaction %s not found", id.Hex())
		}
		return nil, apperr.Storage("failed to fetch transaction", err)
	}
	return &txn, nil
}

// ReplaceTransaction overwrites one ledger entry.
func (r *Repository) ReplaceTransaction(ctx context.Context, id primitive.ObjectID, txn *models.Transaction) error {
	res, err := r.collection(transactionsCollection).ReplaceOne(ctx, bson.M{"_id": id}, txn)
	if err != nil {
		return apperr.Storage("failed to update transaction", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("transaction %s not found", id.Hex())
	}
	return nil
}

// DeleteTransaction removes one ledger entry.
func (r *Repository) DeleteTransaction(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(transactionsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storage("failed to delete transaction", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("transaction %s not found", id.Hex())
	}
	return nil
}

// FindTransactionsByAccount returns every entry where the account appears on
// either side, newest first.
func (r *Repository) FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"debitedFrom": accountNumber},
		bson.M{"creditedTo": accountNumber},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection(transactionsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage("failed to query transactions by account", err)
	}
	defer cursor.Close(ctx)

	txns := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, apperr.Storage("failed to decode transactions", err)
	}
	return txns, nil
}

// AccountTotals aggregates credited and debited sums for one account in a
// single pipeline. An account with no transactions yields zeros.
func (r *Repository) AccountTotals(ctx context.Context, accountNumber string) (models.AccountTotals, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"debitedFrom": accountNumber},
			bson.M{"creditedTo": accountNumber},
		}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"totalCredited": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$creditedTo", accountNumber}}, "$amount", 0},
			}},
			"totalDebited": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$debitedFrom", accountNumber}}, "$amount", 0},
			}},
		}}},
	}

	zero := models.AccountTotals{AccountNumber: accountNumber}

	cursor, err := r.collection(transactionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return zero, apperr.Storage("failed to aggregate account totals", err)
	}
	defer cursor.Close(ctx)

	var results []models.AccountTotals
	if err := cursor.All(ctx, &results); err != nil {
		return zero, apperr.Storage("failed to decode account totals", err)
	}
	if len(results) == 0 {
		return zero, nil
	}

	totals := results[0]
	totals.AccountNumber = accountNumber
	totals.NetAmount = totals.TotalCredited - totals.TotalDebited
	return totals, nil
}

// TransactionVolumeSince returns the count and summed amount of entries dated
// at or after the given instant. Used by the daily report snapshot.
func (r *Repository) TransactionVolumeSince(ctx context.Context, since time.Time) (int64, float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": since}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"count":  bson.M{"$sum": 1},
			"volume": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.collection(transactionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, apperr.Storage("failed to aggregate transaction volume", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count  int64   `bson:"count"`
		Volume float64 `bson:"volume"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, apperr.Storage("failed to decode transaction volume", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Count, results[0].Volume, nil
}

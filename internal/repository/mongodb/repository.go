// Package mongodb implements the document store for farmers, crops,
// transactions and daily reports. Uniqueness of farmer identifiers is
// enforced by indexes here, not by application-level pre-checks.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	farmersCollection      = "farmers"
	cropsCollection        = "crops"
	transactionsCollection = "transactions"
	reportsCollection      = "daily_reports"
)

// Repository is the MongoDB-backed store shared by all resources.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB, verifies the connection and ensures the
// unique indexes the validation gate relies on.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &Repository{client: client, dbName: dbName}

	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return repo, nil
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	farmerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "aadhar", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "bankAccountNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.collection(farmersCollection).Indexes().CreateMany(ctx, farmerIndexes); err != nil {
		return fmt.Errorf("farmers indexes: %w", err)
	}

	cropIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "farmerDetails.aadhar", Value: 1}}},
		{Keys: bson.D{{Key: "latestUpdate.date", Value: -1}}},
	}
	if _, err := r.collection(cropsCollection).Indexes().CreateMany(ctx, cropIndexes); err != nil {
		return fmt.Errorf("crops indexes: %w", err)
	}

	txnIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "debitedFrom", Value: 1}}},
		{Keys: bson.D{{Key: "creditedTo", Value: 1}}},
	}
	if _, err := r.collection(transactionsCollection).Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("transactions indexes: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

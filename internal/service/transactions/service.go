// Package transactions implements the account ledger: independent entries
// between two accounts and pure-aggregation balance queries. No balance is
// ever stored.
package transactions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/repository/mongodb"
)

// Service owns ledger CRUD and account-scoped reporting.
type Service struct {
	repo   mongodb.TransactionRepository
	logger *zap.Logger
}

// NewService wires a new ledger service instance.
func NewService(repo mongodb.TransactionRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create records a new ledger entry. Date defaults to now when omitted.
func (s *Service) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if txn.Date.IsZero() {
		txn.Date = now
	}
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if err := s.repo.InsertTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("transaction recorded",
		zap.String("id", txn.ID.Hex()),
		zap.Float64("amount", txn.Amount))
	return txn, nil
}

// List returns all ledger entries.
func (s *Service) List(ctx context.Context) ([]models.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

// Get fetches one ledger entry.
func (s *Service) Get(ctx context.Context, idHex string) (*models.Transaction, error) {
	id, err := parseTransactionID(idHex)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTransactionByID(ctx, id)
}

// Update replaces one ledger entry after re-validation.
func (s *Service) Update(ctx context.Context, idHex string, txn *models.Transaction) (*models.Transaction, error) {
	id, err := parseTransactionID(idHex)
	if err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txn.ID = id
	txn.CreatedAt = existing.CreatedAt
	txn.UpdatedAt = time.Now().UTC()
	if txn.Date.IsZero() {
		txn.Date = existing.Date
	}

	if err := s.repo.ReplaceTransaction(ctx, id, txn); err != nil {
		return nil, err
	}

	s.logger.Info("transaction updated", zap.String("id", idHex))
	return txn, nil
}

// Delete removes one ledger entry.
func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := parseTransactionID(idHex)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", zap.String("id", idHex))
	return nil
}

// ListByAccount returns every entry touching the account, either side.
func (s *Service) ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	if accountNumber == "" {
		return nil, apperr.Validation("accountNumber is required")
	}
	return s.repo.FindTransactionsByAccount(ctx, accountNumber)
}

// TotalsForAccount aggregates credited/debited/net for one account. No
// matching transactions yields zeros, not an error.
func (s *Service) TotalsForAccount(ctx context.Context, accountNumber string) (models.AccountTotals, error) {
	if accountNumber == "" {
		return models.AccountTotals{}, apperr.Validation("accountNumber is required")
	}
	return s.repo.AccountTotals(ctx, accountNumber)
}

func parseTransactionID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid transaction id %q", idHex)
	}
	return id, nil
}

func validateTransaction(txn *models.Transaction) error {
	if txn == nil {
		return apperr.Validation("request body is required")
	}
	if txn.DebitedFrom == "" {
		return apperr.Validation("debitedFrom is required")
	}
	if txn.CreditedTo == "" {
		return apperr.Validation("creditedTo is required")
	}
	if txn.Amount <= 0 {
		return apperr.Validation("amount must be greater than zero")
	}
	// Self-transfers net to zero on both sides of the same account; reject
	// them at the API, not only in the client form.
	if txn.DebitedFrom == txn.CreditedTo {
		return apperr.Validation("debitedFrom and creditedTo must be different accounts")
	}
	return nil
}

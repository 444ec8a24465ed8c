package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// TransactionService is the slice of the ledger service the handler consumes.
type TransactionService interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, idHex string) (*models.Transaction, error)
	Update(ctx context.Context, idHex string, txn *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, idHex string) error
	ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	TotalsForAccount(ctx context.Context, accountNumber string) (models.AccountTotals, error)
}

// TransactionHandler adapts the ledger service to HTTP.
type TransactionHandler struct {
	svc    TransactionService
	logger *zap.Logger
}

// NewTransactionHandler constructs the HTTP handler adapter.
func NewTransactionHandler(svc TransactionService, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{svc: svc, logger: logger}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var txn models.Transaction
	if err := c.ShouldBindJSON(&txn); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid transaction payload: %s", err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &txn)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, created, "transaction recorded")
}

// List handles GET /transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	txns, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, txns, "")
}

// Get handles GET /transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, txn, "")
}

// Update handles PUT /transactions/:id.
func (h *TransactionHandler) Update(c *gin.Context) {
	var txn models.Transaction
	if err := c.ShouldBindJSON(&txn); err != nil {
		respondError(c, h.logger, apperr.Validation("invalid transaction payload: %s", err.Error()))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), &txn)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, updated, "transaction updated")
}

// Delete handles DELETE /transactions/:id.
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "transaction deleted")
}

// ListByAccount handles GET /transactions/account/:accountNumber.
func (h *TransactionHandler) ListByAccount(c *gin.Context) {
	txns, err := h.svc.ListByAccount(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, txns, "")
}

// Totals handles GET /transactions/account/:accountNumber/total.
func (h *TransactionHandler) Totals(c *gin.Context) {
	totals, err := h.svc.TotalsForAccount(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, totals, "")
}

package services

import (
	"context"

	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/dto"
)

// TransactionSvcFacade defines the ledger mutation and history operations.
type TransactionSvcFacade interface {
	// CreateTransaction validates the request, applies the balance delta
	// and persists the row only if the delta application succeeds.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, ownerID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction scoped to its owner.
	GetTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error)

	// UpdateTransaction reverts the old delta and applies the new one;
	// same-account edits are combined into a single balance change so no
	// intermediate state is ever observable.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, ownerID string) (*domain.Transaction, error)

	// DeleteTransaction reverts the delta and removes the row atomically.
	DeleteTransaction(ctx context.Context, transactionID string, ownerID string) error

	// ListTransactionsByAccount retrieves paginated history for one account.
	ListTransactionsByAccount(ctx context.Context, accountID string, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

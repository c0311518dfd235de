package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// BalanceChange describes one account's share of an atomic mutation:
// the signed delta to apply and the currency the caller expects the
// account to be denominated in.
type BalanceChange struct {
	AccountID        string
	OwnerID          string
	Delta            decimal.Decimal
	ExpectedCurrency string
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by ID, scoped to its owner.
	FindTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a token-paginated transaction
	// history for one account, newest first.
	ListTransactionsByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the atomic mutation units of the ledger.
// Each method commits its balance changes and row effects together or
// not at all; accounts are locked in ascending account-id order.
type TransactionWriter interface {
	// SaveTransaction applies the balance change and inserts the row in
	// one transaction. The row is never persisted if the delta fails.
	SaveTransaction(ctx context.Context, txn domain.Transaction, change BalanceChange) error

	// UpdateTransaction applies the revert/apply balance changes and
	// updates the row in one transaction. A same-account edit arrives as
	// a single combined change.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, changes []BalanceChange) error

	// DeleteTransaction applies the reverting balance change and removes
	// the row in one transaction.
	DeleteTransaction(ctx context.Context, transactionID string, ownerID string, change BalanceChange) error

	// SaveTransferPair inserts both audit transactions and applies both
	// balance changes as one atomic unit. A transfer is never observable
	// half-applied.
	SaveTransferPair(ctx context.Context, outTxn domain.Transaction, inTxn domain.Transaction, changes []BalanceChange) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

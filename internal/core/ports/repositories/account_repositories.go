package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by ID, scoped to its owner.
	// Returns apperrors.ErrNotFound when missing or owned by someone else.
	FindAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts belonging to a user.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account owned by the caller. Transactions
	// referencing it are retained and orphaned.
	DeleteAccount(ctx context.Context, accountID string, ownerID string) error
}

// BalanceApplier is the single choke point through which every balance
// change in the system passes.
type BalanceApplier interface {
	// ApplyDelta atomically sets balance += delta under an exclusive row
	// lock with a bounded timeout. Fails with ErrCurrencyMismatch when
	// expectedCurrency differs from the account's currency, ErrNotFound
	// when the account is missing or unowned, and ErrConflict when the
	// lock cannot be acquired in time.
	ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BalanceApplier
}

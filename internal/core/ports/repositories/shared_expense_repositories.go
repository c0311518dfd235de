package repositories

import (
	"context"
	"time"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// SharedExpenseReader defines read operations for shared-expense rows.
type SharedExpenseReader interface {
	// FindSharedExpenseByID retrieves a row by ID. Callers are expected
	// to check party membership before exposing it.
	FindSharedExpenseByID(ctx context.Context, sharedExpenseID string) (*domain.SharedExpense, error)

	// ListUnsettledBetween retrieves every unsettled row between the two
	// users, in either creator direction, across all currencies. This is
	// a lock-free read.
	ListUnsettledBetween(ctx context.Context, userID string, counterpartyID string) ([]domain.SharedExpense, error)

	// ListSharedExpensesBetween retrieves a token-paginated history of
	// rows between the two users, newest first.
	ListSharedExpensesBetween(ctx context.Context, userID string, counterpartyID string, limit int, nextToken *string) ([]domain.SharedExpense, *string, error)
}

// SharedExpenseWriter defines write operations for shared-expense rows.
type SharedExpenseWriter interface {
	// SaveSharedExpense persists a new row.
	SaveSharedExpense(ctx context.Context, expense domain.SharedExpense) error

	// UpdateSharedExpense updates the editable fields of an unsettled
	// row. Returns ErrInvalidState if the row is already settled.
	UpdateSharedExpense(ctx context.Context, expense domain.SharedExpense) error

	// MarkSettled transitions settled false -> true exactly once and
	// returns the updated row. Returns ErrInvalidState if the row was
	// already settled and ErrNotFound if it does not exist.
	MarkSettled(ctx context.Context, sharedExpenseID string, settledAt time.Time, updatedBy string) (*domain.SharedExpense, error)
}

// SharedExpenseRepositoryFacade combines the shared-expense interfaces.
type SharedExpenseRepositoryFacade interface {
	SharedExpenseReader
	SharedExpenseWriter
}

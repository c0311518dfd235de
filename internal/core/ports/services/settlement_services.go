package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/dto"
)

// SettlementSvcFacade defines the two-party shared-expense operations.
type SettlementSvcFacade interface {
	// RecordOwnPayment creates a row carrying only the creator's own
	// contribution; the counterparty records theirs separately.
	RecordOwnPayment(ctx context.Context, req dto.CreateSharedExpenseRequest, creatorID string) (*domain.SharedExpense, error)

	// GetSharedExpenseByID retrieves a row visible to either party.
	GetSharedExpenseByID(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error)

	// UpdateSharedExpense edits an unsettled row created by the caller.
	UpdateSharedExpense(ctx context.Context, sharedExpenseID string, req dto.UpdateSharedExpenseRequest, ownerID string) (*domain.SharedExpense, error)

	// Balance computes the fair-share net for one currency: positive
	// means the counterparty owes the caller.
	Balance(ctx context.Context, userID string, counterpartyID string, currencyCode string) (decimal.Decimal, error)

	// BalancesByCurrency computes the fair-share net per currency.
	// Amounts in different currencies are never combined.
	BalancesByCurrency(ctx context.Context, userID string, counterpartyID string) (map[string]decimal.Decimal, error)

	// Settle transitions a row to its terminal settled state.
	Settle(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error)

	// ListSharedExpenses retrieves paginated history with one counterparty.
	ListSharedExpenses(ctx context.Context, ownerID string, params dto.ListSharedExpensesParams) (*dto.ListSharedExpensesResponse, error)
}

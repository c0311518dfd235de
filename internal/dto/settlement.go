package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// CreateSharedExpenseRequest records the caller's own payment toward an
// expense shared with one counterparty.
type CreateSharedExpenseRequest struct {
	CounterpartyID      string          `json:"counterpartyID" binding:"required"`
	Description         string          `json:"description" binding:"required"`
	TotalAmount         decimal.Decimal `json:"totalAmount" binding:"required"`
	AmountPaid          decimal.Decimal `json:"amountPaid" binding:"required"`
	CurrencyCode        string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	LinkedTransactionID *string         `json:"linkedTransactionID"`
}

// UpdateSharedExpenseRequest defines the fields editable while the row
// is unsettled.
type UpdateSharedExpenseRequest struct {
	Description      *string          `json:"description"`
	TotalAmount      *decimal.Decimal `json:"totalAmount"`
	CreatorPaid      *decimal.Decimal `json:"creatorPaid"`
	CounterpartyPaid *decimal.Decimal `json:"counterpartyPaid"`
}

// SharedExpenseResponse defines the data returned for a shared expense.
type SharedExpenseResponse struct {
	SharedExpenseID     string          `json:"sharedExpenseID"`
	CreatorID           string          `json:"creatorID"`
	CounterpartyID      string          `json:"counterpartyID"`
	Description         string          `json:"description"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CurrencyCode        string          `json:"currencyCode"`
	CreatorPaid         decimal.Decimal `json:"creatorPaid"`
	CounterpartyPaid    decimal.Decimal `json:"counterpartyPaid"`
	Settled             bool            `json:"settled"`
	SettledAt           *time.Time      `json:"settledAt,omitempty"`
	LinkedTransactionID *string         `json:"linkedTransactionID,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToSharedExpenseResponse converts a domain.SharedExpense.
func ToSharedExpenseResponse(e *domain.SharedExpense) SharedExpenseResponse {
	return SharedExpenseResponse{
		SharedExpenseID:     e.SharedExpenseID,
		CreatorID:           e.CreatorID,
		CounterpartyID:      e.CounterpartyID,
		Description:         e.Description,
		TotalAmount:         e.TotalAmount,
		CurrencyCode:        e.CurrencyCode,
		CreatorPaid:         e.CreatorPaid,
		CounterpartyPaid:    e.CounterpartyPaid,
		Settled:             e.Settled,
		SettledAt:           e.SettledAt,
		LinkedTransactionID: e.LinkedTransactionID,
		CreatedAt:           e.CreatedAt,
	}
}

// ListSharedExpensesParams holds query parameters for listing shared expenses.
type ListSharedExpensesParams struct {
	CounterpartyID string  `form:"counterpartyID" binding:"required"`
	Limit          int     `form:"limit,default=20"`
	NextToken      *string `form:"nextToken"`
}

// ListSharedExpensesResponse wraps one page of shared expenses.
type ListSharedExpensesResponse struct {
	SharedExpenses []SharedExpenseResponse `json:"sharedExpenses"`
	NextToken      *string                 `json:"nextToken,omitempty"`
}

// PairBalanceResponse reports the fair-share settlement position against
// one counterparty. Balances never combine across currencies: one entry
// per currency, positive meaning the counterparty owes the caller.
type PairBalanceResponse struct {
	CounterpartyID string                     `json:"counterpartyID"`
	Balances       map[string]decimal.Decimal `json:"balances"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	AccountID    string                 `json:"accountID" binding:"required"`
	Kind         domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode string                 `json:"currencyCode" binding:"required,len=3,uppercase"`
	OccurredAt   *time.Time             `json:"occurredAt"` // Defaults to now
	Notes        string                 `json:"notes"`
}

// UpdateTransactionRequest defines the fields a transaction edit may change.
// Pointers distinguish "not provided" from zero values.
type UpdateTransactionRequest struct {
	AccountID    *string                 `json:"accountID"`
	Kind         *domain.TransactionKind `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount       *decimal.Decimal        `json:"amount"`
	CurrencyCode *string                 `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	OccurredAt   *time.Time              `json:"occurredAt"`
	Notes        *string                 `json:"notes"`
}

// TransactionResponse is the stable audit record shape used by history
// and reporting views.
type TransactionResponse struct {
	TransactionID string                 `json:"id"`
	AccountID     string                 `json:"accountId"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	CurrencyCode  string                 `json:"currency"`
	OccurredAt    time.Time              `json:"occurredAt"`
	Notes         string                 `json:"note"`
}

// ToTransactionResponse converts a domain.Transaction to its audit shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Kind:          txn.Kind,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		OccurredAt:    txn.OccurredAt,
		Notes:         txn.Notes,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams holds query parameters for transaction history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps one page of transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

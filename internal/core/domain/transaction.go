package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the closed set of transaction variants.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// Transaction is a single signed movement against one account.
// Its currency must equal the target account's currency; amounts are
// applied without conversion.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	OwnerID       string          `json:"ownerID"`
	AccountID     string          `json:"accountID"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	CurrencyCode  string          `json:"currencyCode"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Notes         string          `json:"notes"`
	AuditFields
}

// Delta is the signed balance change the transaction causes:
// +Amount for Income, -Amount for Expense.
func (t Transaction) Delta() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors domain.TransactionKind at the storage layer.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Transaction is the database representation of a ledger transaction.
// account_id is not a foreign key on purpose: transactions referencing a
// deleted account are retained and orphaned.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	AccountID     string          `db:"account_id"`
	Kind          TransactionKind `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	OccurredAt    time.Time       `db:"occurred_at"`
	Notes         string          `db:"notes"`
	AuditFields
}

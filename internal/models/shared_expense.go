package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedExpense is the database representation of one party's
// contribution in a two-party shared expense.
type SharedExpense struct {
	SharedExpenseID     string          `db:"shared_expense_id"`
	CreatorID           string          `db:"creator_id"`
	CounterpartyID      string          `db:"counterparty_id"`
	Description         string          `db:"description"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	CurrencyCode        string          `db:"currency_code"`
	CreatorPaid         decimal.Decimal `db:"creator_paid"`
	CounterpartyPaid    decimal.Decimal `db:"counterparty_paid"`
	Settled             bool            `db:"settled"`
	SettledAt           *time.Time      `db:"settled_at"`
	LinkedTransactionID *string         `db:"linked_transaction_id"`
	AuditFields
}

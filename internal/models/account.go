package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a monetary account.
type Account struct {
	AccountID    string          `db:"account_id"`
	OwnerID      string          `db:"owner_id"`
	Name         string          `db:"name"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
}

package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a monetary account owned by a single user.
// Invariant: Balance equals the sum of the deltas of all currently-existing
// transactions referencing the account, starting from zero at creation.
// Balance is only ever written through the account store's ApplyDelta.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary key (UUID)
	OwnerID      string          `json:"ownerID"`      // Owning user, set by the authenticated boundary
	Name         string          `json:"name"`         // User-defined name
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code, fixed at creation
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedExpense records one party's contribution toward an expense split
// between exactly two users. Each row carries only the creator's own
// payment; the counterparty records theirs in a separate row. Once
// settled the row is immutable.
type SharedExpense struct {
	SharedExpenseID     string          `json:"sharedExpenseID"` // Primary key (UUID)
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
	AuditFields
}

// InvolvesUser reports whether userID is one of the two parties.
func (e SharedExpense) InvolvesUser(userID string) bool {
	return e.CreatorID == userID || e.CounterpartyID == userID
}

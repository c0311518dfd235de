package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PivotCurrency is the reference currency through which all conversions
// are routed. Rate tables express units of each currency per one EUR.
const PivotCurrency = "EUR"

// RateTable maps a currency code to its rate per one unit of the pivot.
type RateTable map[string]decimal.Decimal

// RateSnapshot is a rate table together with the moment it was fetched.
// The last good snapshot is persisted so conversions keep working when
// the live source is unreachable.
type RateSnapshot struct {
	SnapshotID string    `json:"snapshotID"` // Primary key (UUID)
	Rates      RateTable `json:"rates"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

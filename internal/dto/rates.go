package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// RateTableResponse exposes the resolved EUR-pivot rate table.
type RateTableResponse struct {
	Base      string                     `json:"base"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// ToRateTableResponse converts a snapshot into its response DTO.
func ToRateTableResponse(snapshot *domain.RateSnapshot) RateTableResponse {
	return RateTableResponse{
		Base:      domain.PivotCurrency,
		FetchedAt: snapshot.FetchedAt,
		Rates:     snapshot.Rates,
	}
}

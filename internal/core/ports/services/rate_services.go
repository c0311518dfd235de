package services

import (
	"context"
	"time"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// RateSource fetches a live EUR-pivot rate table from an external
// provider. Implementations live outside the core.
type RateSource interface {
	FetchLatest(ctx context.Context) (domain.RateTable, time.Time, error)
}

// RateSvcFacade resolves the rate table handed to the conversion paths.
// The table is refreshed at most once per configured interval, with a
// last-known-good fallback when the live source is unreachable.
type RateSvcFacade interface {
	GetRates(ctx context.Context) (*domain.RateSnapshot, error)
}

package repositories

import (
	"context"

	"github.com/finledger/ledgerd/internal/core/domain"
)

// RateSnapshotRepository persists fetched rate tables so the engine can
// serve a last-known-good table when the live source is unreachable.
type RateSnapshotRepository interface {
	// SaveRateSnapshot persists a freshly fetched rate table.
	SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error

	// FindLatestRateSnapshot retrieves the most recently fetched table.
	FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

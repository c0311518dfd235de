package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	"github.com/finledger/ledgerd/internal/models"
	"github.com/finledger/ledgerd/internal/utils/mapping"
)

type PgxRateSnapshotRepository struct {
	BaseRepository
}

// newPgxRateSnapshotRepository creates a new repository for persisted rate tables.
func newPgxRateSnapshotRepository(pool *pgxpool.Pool) portsrepo.RateSnapshotRepository {
	return &PgxRateSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRateSnapshotRepository implements portsrepo.RateSnapshotRepository
var _ portsrepo.RateSnapshotRepository = (*PgxRateSnapshotRepository)(nil)

// SaveRateSnapshot persists a freshly fetched rate table as JSON.
func (r *PgxRateSnapshotRepository) SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	m, err := mapping.ToModelRateSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rate_snapshots (snapshot_id, rates, fetched_at)
		VALUES ($1, $2, $3);
	`
	if _, err := r.Pool.Exec(ctx, query, m.SnapshotID, m.Rates, m.FetchedAt); err != nil {
		return fmt.Errorf("failed to save rate snapshot %s: %w", m.SnapshotID, err)
	}
	return nil
}

// FindLatestRateSnapshot retrieves the most recently fetched rate table.
func (r *PgxRateSnapshotRepository) FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, rates, fetched_at
		FROM rate_snapshots
		ORDER BY fetched_at DESC
		LIMIT 1;
	`
	var m models.RateSnapshot
	err := r.Pool.QueryRow(ctx, query).Scan(&m.SnapshotID, &m.Rates, &m.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate snapshot stored")
		}
		return nil, fmt.Errorf("failed to find latest rate snapshot: %w", err)
	}

	snap, err := mapping.ToDomainRateSnapshot(m)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

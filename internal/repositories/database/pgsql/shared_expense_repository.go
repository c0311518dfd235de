package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	"github.com/finledger/ledgerd/internal/models"
	"github.com/finledger/ledgerd/internal/utils/mapping"
	"github.com/finledger/ledgerd/internal/utils/pagination"
)

const sharedExpenseColumns = `shared_expense_id, creator_id, counterparty_id, description, total_amount, currency_code, creator_paid, counterparty_paid, settled, settled_at, linked_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxSharedExpenseRepository struct {
	BaseRepository
}

// newPgxSharedExpenseRepository creates a new repository for shared-expense data.
func newPgxSharedExpenseRepository(pool *pgxpool.Pool) portsrepo.SharedExpenseRepositoryFacade {
	return &PgxSharedExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSharedExpenseRepository implements portsrepo.SharedExpenseRepositoryFacade
var _ portsrepo.SharedExpenseRepositoryFacade = (*PgxSharedExpenseRepository)(nil)

func scanSharedExpense(row pgx.Row) (models.SharedExpense, error) {
	var m models.SharedExpense
	err := row.Scan(
		&m.SharedExpenseID,
		&m.CreatorID,
		&m.CounterpartyID,
		&m.Description,
		&m.TotalAmount,
		&m.CurrencyCode,
		&m.CreatorPaid,
		&m.CounterpartyPaid,
		&m.Settled,
		&m.SettledAt,
		&m.LinkedTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSharedExpense persists a new shared-expense row.
func (r *PgxSharedExpenseRepository) SaveSharedExpense(ctx context.Context, expense domain.SharedExpense) error {
	m := mapping.ToModelSharedExpense(expense)

	query := `
		INSERT INTO shared_expenses (` + sharedExpenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SharedExpenseID,
		m.CreatorID,
		m.CounterpartyID,
		m.Description,
		m.TotalAmount,
		m.CurrencyCode,
		m.CreatorPaid,
		m.CounterpartyPaid,
		m.Settled,
		m.SettledAt,
		m.LinkedTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: shared expense with ID %s already exists", apperrors.ErrDuplicate, m.SharedExpenseID)
		}
		return fmt.Errorf("failed to save shared expense %s: %w", m.SharedExpenseID, err)
	}
	return nil
}

// FindSharedExpenseByID retrieves a shared-expense row by its ID.
func (r *PgxSharedExpenseRepository) FindSharedExpenseByID(ctx context.Context, sharedExpenseID string) (*domain.SharedExpense, error) {
	query := `
		SELECT ` + sharedExpenseColumns + `
		FROM shared_expenses
		WHERE shared_expense_id = $1;
	`
	m, err := scanSharedExpense(r.Pool.QueryRow(ctx, query, sharedExpenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("shared expense %s not found", sharedExpenseID))
		}
		return nil, fmt.Errorf("failed to find shared expense by ID %s: %w", sharedExpenseID, err)
	}

	exp := mapping.ToDomainSharedExpense(m)
	return &exp, nil
}

// ListUnsettledBetween retrieves every unsettled row between the two
// users, in either creator direction.
func (r *PgxSharedExpenseRepository) ListUnsettledBetween(ctx context.Context, userID string, counterpartyID string) ([]domain.SharedExpense, error) {
	query := `
		SELECT ` + sharedExpenseColumns + `
		FROM shared_expenses
		WHERE settled = FALSE
		  AND ((creator_id = $1 AND counterparty_id = $2) OR (creator_id = $2 AND counterparty_id = $1))
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled expenses between %s and %s: %w", userID, counterpartyID, err)
	}
	defer rows.Close()

	expenses := []models.SharedExpense{}
	for rows.Next() {
		m, err := scanSharedExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shared expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating shared expense rows: %w", rows.Err())
	}

	return mapping.ToDomainSharedExpenseSlice(expenses), nil
}

// ListSharedExpensesBetween retrieves a token-paginated history of rows
// between the two users, newest first.
func (r *PgxSharedExpenseRepository) ListSharedExpensesBetween(ctx context.Context, userID string, counterpartyID string, limit int, nextToken *string) ([]domain.SharedExpense, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + sharedExpenseColumns + `
		FROM shared_expenses
		WHERE ((creator_id = $1 AND counterparty_id = $2) OR (creator_id = $2 AND counterparty_id = $1))
	`
	args := []interface{}{userID, counterpartyID}

	if nextToken != nil && *nextToken != "" {
		// The cursor carries created_at twice: shared expenses have no
		// separate business timestamp to sort on.
		createdAt, _, sharedExpenseID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, shared_expense_id) < ($3, $4)`
		args = append(args, createdAt, sharedExpenseID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, shared_expense_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query shared expenses between %s and %s: %w", userID, counterpartyID, err)
	}
	defer rows.Close()

	expenses := []models.SharedExpense{}
	for rows.Next() {
		m, err := scanSharedExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan shared expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating shared expense rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CreatedAt, last.SharedExpenseID)
		newNextToken = &token
	}

	return mapping.ToDomainSharedExpenseSlice(expenses), newNextToken, nil
}

// UpdateSharedExpense rewrites the editable fields of an unsettled row.
// The settled = FALSE guard keeps a settled row immutable even when a
// concurrent settle slips in between the caller's read and this write.
func (r *PgxSharedExpenseRepository) UpdateSharedExpense(ctx context.Context, expense domain.SharedExpense) error {
	m := mapping.ToModelSharedExpense(expense)

	query := `
		UPDATE shared_expenses
		SET description = $2, total_amount = $3, creator_paid = $4, counterparty_paid = $5, linked_transaction_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE shared_expense_id = $1 AND settled = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SharedExpenseID,
		m.Description,
		m.TotalAmount,
		m.CreatorPaid,
		m.CounterpartyPaid,
		m.LinkedTransactionID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shared expense %s: %w", m.SharedExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing row from one already settled.
		if _, findErr := r.FindSharedExpenseByID(ctx, m.SharedExpenseID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: shared expense %s is already settled", apperrors.ErrInvalidState, m.SharedExpenseID)
	}
	return nil
}

// MarkSettled transitions settled false -> true exactly once.
func (r *PgxSharedExpenseRepository) MarkSettled(ctx context.Context, sharedExpenseID string, settledAt time.Time, updatedBy string) (*domain.SharedExpense, error) {
	query := `
		UPDATE shared_expenses
		SET settled = TRUE, settled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE shared_expense_id = $1 AND settled = FALSE
		RETURNING ` + sharedExpenseColumns + `;
	`
	m, err := scanSharedExpense(r.Pool.QueryRow(ctx, query, sharedExpenseID, settledAt, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing row from one already settled.
			if _, findErr := r.FindSharedExpenseByID(ctx, sharedExpenseID); findErr != nil {
				return nil, findErr
			}
			return nil, fmt.Errorf("%w: shared expense %s is already settled", apperrors.ErrInvalidState, sharedExpenseID)
		}
		return nil, fmt.Errorf("failed to settle shared expense %s: %w", sharedExpenseID, err)
	}

	exp := mapping.ToDomainSharedExpense(m)
	return &exp, nil
}

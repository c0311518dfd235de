package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	"github.com/finledger/ledgerd/internal/models"
	"github.com/finledger/ledgerd/internal/utils/mapping"
)

const accountColumns = `account_id, owner_id, name, currency_code, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OwnerID,
		&m.Name,
		&m.CurrencyCode,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerID,
		m.Name,
		m.CurrencyCode,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to the owner.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND owner_id = $2;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccountsByOwner retrieves all accounts belonging to a user.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for owner %s: %w", ownerID, err)
		}
		accounts = append(accounts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for owner %s: %w", ownerID, rows.Err())
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// DeleteAccount removes an account owned by the caller. Transactions
// referencing the account are left in place.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string, ownerID string) error {
	query := `
		DELETE FROM accounts
		WHERE account_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}

// ApplyDelta atomically applies a single balance change inside its own
// database transaction.
func (r *PgxAccountRepository) ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	acc, err := applyDeltaTx(ctx, tx, accountID, ownerID, delta, expectedCurrency)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return acc, nil
}

// applyDeltaTx is the single choke point through which every balance
// mutation passes. It locks the account row (scoped to the owner),
// verifies the currency under the lock, applies the delta, and checks
// that the persisted balance equals locked balance + delta.
func applyDeltaTx(ctx context.Context, tx pgx.Tx, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error) {
	lockQuery := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND owner_id = $2
		FOR UPDATE;
	`
	m, err := scanAccount(tx.QueryRow(ctx, lockQuery, accountID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		if mapped := mapLockError(err); errors.Is(mapped, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: could not lock account %s", apperrors.ErrConflict, accountID)
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	if expectedCurrency != "" && m.CurrencyCode != expectedCurrency {
		return nil, fmt.Errorf("%w: account %s is %s, expected %s", apperrors.ErrCurrencyMismatch, accountID, m.CurrencyCode, expectedCurrency)
	}

	updateQuery := `
		UPDATE accounts
		SET balance = balance + $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE account_id = $1 AND owner_id = $2
		RETURNING balance, last_updated_at, last_updated_by;
	`
	var newBalance decimal.Decimal
	err = tx.QueryRow(ctx, updateQuery, accountID, ownerID, delta, ownerID).Scan(&newBalance, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to apply delta to account %s: %w", accountID, err)
	}

	if want := m.Balance.Add(delta); !newBalance.Equal(want) {
		return nil, fmt.Errorf("%w: account %s balance %s after delta %s, want %s",
			apperrors.ErrInvariantViolation, accountID, newBalance, delta, want)
	}

	m.Balance = newBalance
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

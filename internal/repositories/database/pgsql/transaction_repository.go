package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

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

const transactionColumns = `transaction_id, owner_id, account_id, kind, amount, currency_code, occurred_at, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.AccountID,
		&m.Kind,
		&m.Amount,
		&m.CurrencyCode,
		&m.OccurredAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// applyChangesTx applies every balance change inside tx, locking accounts
// in ascending account-id order so concurrent multi-account mutations
// cannot deadlock each other.
func applyChangesTx(ctx context.Context, tx pgx.Tx, changes []portsrepo.BalanceChange) error {
	ordered := make([]portsrepo.BalanceChange, len(changes))
	copy(ordered, changes)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].AccountID < ordered[j].AccountID
	})

	for _, change := range ordered {
		if _, err := applyDeltaTx(ctx, tx, change.AccountID, change.OwnerID, change.Delta, change.ExpectedCurrency); err != nil {
			return err
		}
	}
	return nil
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.AccountID,
		m.Kind,
		m.Amount,
		m.CurrencyCode,
		m.OccurredAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction applies the balance change and inserts the row in one
// database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, change portsrepo.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := applyDeltaTx(ctx, tx, change.AccountID, change.OwnerID, change.Delta, change.ExpectedCurrency); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction applies the revert/apply balance changes and rewrites
// the row in one database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, changes []portsrepo.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyChangesTx(ctx, tx, changes); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $3, kind = $4, amount = $5, currency_code = $6, occurred_at = $7, notes = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.AccountID,
		m.Kind,
		m.Amount,
		m.CurrencyCode,
		m.OccurredAt,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", m.TransactionID))
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction applies the reverting balance change and removes the
// row in one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, ownerID string, change portsrepo.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := applyDeltaTx(ctx, tx, change.AccountID, change.OwnerID, change.Delta, change.ExpectedCurrency); err != nil {
		return err
	}

	query := `
		DELETE FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}

	return r.Commit(ctx, tx)
}

// SaveTransferPair inserts both legs and applies both balance changes as
// one atomic unit.
func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, outTxn domain.Transaction, inTxn domain.Transaction, changes []portsrepo.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyChangesTx(ctx, tx, changes); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, outTxn); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, inTxn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by ID, scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccountID retrieves a token-paginated history for one
// account, newest first. Ties on occurred_at break on created_at, then
// on transaction_id, so rows sharing both timestamps are never skipped
// across page boundaries.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1 AND account_id = $2
	`
	args := []interface{}{ownerID, accountID}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, transactionID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, created_at, transaction_id) < ($3, $4, $5)`
		args = append(args, occurredAt, createdAt, transactionID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY occurred_at DESC, created_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, rows.Err())
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(txns), newNextToken, nil
}

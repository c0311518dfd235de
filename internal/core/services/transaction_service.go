package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/middleware"
)

// transactionService maintains the per-account balance invariant across
// transaction create/update/delete.
type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the request, computes the signed delta and
// hands row insert plus balance change to the repository as one atomic
// unit. If the delta application fails, no row is created.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, ownerID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		AccountID:     req.AccountID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		OccurredAt:    occurredAt,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	change := portsrepo.BalanceChange{
		AccountID:        txn.AccountID,
		OwnerID:          ownerID,
		Delta:            txn.Delta(),
		ExpectedCurrency: txn.CurrencyCode,
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn, change); err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID), slog.String("delta", txn.Delta().String()))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction scoped to its owner.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// UpdateTransaction reverts the old delta and applies the new one. When
// the account stays the same the two are combined into a single balance
// change, so no intermediate balance is ever observable; when it moves,
// both changes commit in one repository transaction or not at all.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, ownerID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	updated := *existing
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	if req.Kind != nil {
		if !req.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, *req.Kind)
		}
		updated.Kind = *req.Kind
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		updated.CurrencyCode = *req.CurrencyCode
	}
	if req.OccurredAt != nil {
		updated.OccurredAt = req.OccurredAt.UTC()
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	if updated.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = ownerID

	revertDelta := existing.Delta().Neg()
	newDelta := updated.Delta()

	var changes []portsrepo.BalanceChange
	if existing.AccountID == updated.AccountID {
		// Revert and apply collapse into one delta so no intermediate
		// balance is ever externally observable.
		combined := revertDelta.Add(newDelta)
		changes = []portsrepo.BalanceChange{{
			AccountID:        updated.AccountID,
			OwnerID:          ownerID,
			Delta:            combined,
			ExpectedCurrency: updated.CurrencyCode,
		}}
	} else {
		changes = []portsrepo.BalanceChange{
			{
				AccountID:        existing.AccountID,
				OwnerID:          ownerID,
				Delta:            revertDelta,
				ExpectedCurrency: existing.CurrencyCode,
			},
			{
				AccountID:        updated.AccountID,
				OwnerID:          ownerID,
				Delta:            newDelta,
				ExpectedCurrency: updated.CurrencyCode,
			},
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated, changes); err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction reverts the balance delta and removes the row in one
// atomic unit.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, ownerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	change := portsrepo.BalanceChange{
		AccountID:        existing.AccountID,
		OwnerID:          ownerID,
		Delta:            existing.Delta().Neg(),
		ExpectedCurrency: existing.CurrencyCode,
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, ownerID, change); err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ListTransactionsByAccount retrieves paginated history for one account,
// newest first.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, ownerID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

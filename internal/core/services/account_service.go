package services

import (
	"context"
	"errors"
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

// accountService provides account CRUD and the balance mutation primitive.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account with a zero starting balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      ownerID,
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("currency_code", account.CurrencyCode))
	return &account, nil
}

// GetAccountByID retrieves an account scoped to its owner.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account. Transactions referencing it are
// retained and orphaned; their deltas are not reverted.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, ownerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID, ownerID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// ApplyDelta atomically adjusts the account balance through the single
// repository choke point. Every balance change in the system, whatever
// mutation path triggered it, ends up here.
func (s *accountService) ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.ApplyDelta(ctx, accountID, ownerID, delta, expectedCurrency)
	if err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to apply balance delta", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Debug("Balance delta applied", slog.String("account_id", accountID), slog.String("delta", delta.String()), slog.String("balance", account.Balance.String()))
	return account, nil
}

// isCallerError reports whether the error is part of the caller-facing
// contract rather than an internal failure worth an error log.
func isCallerError(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrCurrencyMismatch,
		apperrors.ErrConflict,
		apperrors.ErrInvalidState,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

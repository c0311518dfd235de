package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account scoped to its owner.
	GetAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by the user.
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerID string) (*domain.Account, error)

	// DeleteAccount removes an account owned by the caller.
	DeleteAccount(ctx context.Context, accountID string, ownerID string) error
}

// BalanceApplierSvc exposes the atomic balance mutation primitive.
type BalanceApplierSvc interface {
	// ApplyDelta atomically adjusts the account balance. See the
	// repository port for the error contract.
	ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	BalanceApplierSvc
}

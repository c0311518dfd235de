package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finledger/ledgerd/internal/core/domain"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string, ownerID string) error {
	args := m.Called(ctx, accountID, ownerID)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, ownerID, delta, expectedCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, change portsrepo.BalanceChange) error {
	args := m.Called(ctx, txn, change)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, changes []portsrepo.BalanceChange) error {
	args := m.Called(ctx, txn, changes)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, ownerID string, change portsrepo.BalanceChange) error {
	args := m.Called(ctx, transactionID, ownerID, change)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, outTxn domain.Transaction, inTxn domain.Transaction, changes []portsrepo.BalanceChange) error {
	args := m.Called(ctx, outTxn, inTxn, changes)
	return args.Error(0)
}

// --- Mock SharedExpenseRepository ---
type MockSharedExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.SharedExpenseRepositoryFacade = (*MockSharedExpenseRepository)(nil)

func (m *MockSharedExpenseRepository) FindSharedExpenseByID(ctx context.Context, sharedExpenseID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, sharedExpenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockSharedExpenseRepository) ListUnsettledBetween(ctx context.Context, userID string, counterpartyID string) ([]domain.SharedExpense, error) {
	args := m.Called(ctx, userID, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharedExpense), args.Error(1)
}

func (m *MockSharedExpenseRepository) ListSharedExpensesBetween(ctx context.Context, userID string, counterpartyID string, limit int, nextToken *string) ([]domain.SharedExpense, *string, error) {
	args := m.Called(ctx, userID, counterpartyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.SharedExpense), returnedNextToken, args.Error(2)
}

func (m *MockSharedExpenseRepository) SaveSharedExpense(ctx context.Context, expense domain.SharedExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockSharedExpenseRepository) UpdateSharedExpense(ctx context.Context, expense domain.SharedExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockSharedExpenseRepository) MarkSettled(ctx context.Context, sharedExpenseID string, settledAt time.Time, updatedBy string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, sharedExpenseID, settledAt, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

// --- Mock RateSnapshotRepository ---
type MockRateSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.RateSnapshotRepository = (*MockRateSnapshotRepository)(nil)

func (m *MockRateSnapshotRepository) SaveRateSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockRateSnapshotRepository) FindLatestRateSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

// --- Mock AccountService (as used by TransferService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, ownerID string) error {
	args := m.Called(ctx, accountID, ownerID)
	return args.Error(0)
}

func (m *MockAccountService) ApplyDelta(ctx context.Context, accountID string, ownerID string, delta decimal.Decimal, expectedCurrency string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, ownerID, delta, expectedCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

var _ portssvc.RateSource = (*MockRateSource)(nil)

func (m *MockRateSource) FetchLatest(ctx context.Context) (domain.RateTable, time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, time.Time{}, args.Error(2)
	}
	return args.Get(0).(domain.RateTable), args.Get(1).(time.Time), args.Error(2)
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/core/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/handlers"
	"github.com/finledger/ledgerd/internal/platform/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerID string) (*domain.Account, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

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

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string, ownerID string) error {
	args := m.Called(ctx, transactionID, ownerID)
	return args.Error(0)
}

func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, accountID string, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

func (m *MockTransferService) Execute(ctx context.Context, req dto.TransferRequest, rates domain.RateTable, ownerID string) (*portssvc.TransferResult, error) {
	args := m.Called(ctx, req, rates, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TransferResult), args.Error(1)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

func (m *MockSettlementService) RecordOwnPayment(ctx context.Context, req dto.CreateSharedExpenseRequest, creatorID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockSettlementService) GetSharedExpenseByID(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, sharedExpenseID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockSettlementService) UpdateSharedExpense(ctx context.Context, sharedExpenseID string, req dto.UpdateSharedExpenseRequest, ownerID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, sharedExpenseID, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockSettlementService) Balance(ctx context.Context, userID string, counterpartyID string, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, counterpartyID, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSettlementService) BalancesByCurrency(ctx context.Context, userID string, counterpartyID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockSettlementService) Settle(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error) {
	args := m.Called(ctx, sharedExpenseID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedExpense), args.Error(1)
}

func (m *MockSettlementService) ListSharedExpenses(ctx context.Context, ownerID string, params dto.ListSharedExpensesParams) (*dto.ListSharedExpensesResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSharedExpensesResponse), args.Error(1)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

func (m *MockRateService) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockAccountService    *MockAccountService
	mockTransactionSvc    *MockTransactionService
	mockTransferService   *MockTransferService
	mockSettlementService *MockSettlementService
	mockRateService       *MockRateService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledgerd-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockTransactionSvc = new(MockTransactionService)
	suite.mockTransferService = new(MockTransferService)
	suite.mockSettlementService = new(MockSettlementService)
	suite.mockRateService = new(MockRateService)

	container := &services.Container{
		Account:     suite.mockAccountService,
		Transaction: suite.mockTransactionSvc,
		Transfer:    suite.mockTransferService,
		Settlement:  suite.mockSettlementService,
		Rates:       suite.mockRateService,
	}
	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	ownerID := uuid.NewString()
	now := time.Now().UTC()
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      ownerID,
		Name:         "Checking",
		CurrencyCode: "EUR",
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Name == "Checking" && r.CurrencyCode == "EUR"
		}),
		ownerID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Checking", CurrencyCode: "EUR"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, ownerID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.True(resp.Balance.IsZero())
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_RejectsLowercaseCurrency() {
	ownerID := uuid.NewString()

	body, _ := json.Marshal(map[string]string{"name": "Checking", "currencyCode": "eur"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, ownerID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Unauthorized() {
	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Checking", CurrencyCode: "EUR"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	ownerID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, ownerID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, ownerID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListTransactionsByAccount_Success() {
	ownerID := uuid.NewString()
	accountID := uuid.NewString()
	limit := 10

	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				AccountID:     accountID,
				Kind:          domain.Income,
				Amount:        decimal.NewFromInt(100),
				CurrencyCode:  "EUR",
				OccurredAt:    time.Now().UTC(),
			},
		},
		NextToken: nil,
	}

	suite.mockTransactionSvc.On("ListTransactionsByAccount",
		mock.Anything,
		accountID,
		ownerID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d", accountID, limit)
	w := suite.authedRequest(http.MethodGet, url, nil, ownerID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(accountID, resp.Transactions[0].AccountID)
	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateTransfer_ResolvesRatesAndExecutes() {
	ownerID := uuid.NewString()
	req := dto.TransferRequest{
		FromAccountID:    uuid.NewString(),
		ToAccountID:      uuid.NewString(),
		Amount:           decimal.NewFromInt(100),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "BGN",
	}
	rates := domain.RateTable{
		"EUR": decimal.NewFromInt(1),
		"BGN": decimal.RequireFromString("1.95583"),
	}
	snapshot := &domain.RateSnapshot{SnapshotID: uuid.NewString(), Rates: rates, FetchedAt: time.Now().UTC()}
	result := &portssvc.TransferResult{
		OutTransaction: domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     req.FromAccountID,
			Kind:          domain.Expense,
			Amount:        req.Amount,
			CurrencyCode:  "EUR",
		},
		InTransaction: domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     req.ToAccountID,
			Kind:          domain.Income,
			Amount:        decimal.RequireFromString("195.58"),
			CurrencyCode:  "BGN",
		},
	}

	suite.mockRateService.On("GetRates", mock.Anything).Return(snapshot, nil).Once()
	suite.mockTransferService.On("Execute", mock.Anything, req, rates, ownerID).Return(result, nil).Once()

	body, _ := json.Marshal(req)
	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers", body, ownerID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(result.OutTransaction.TransactionID, resp.OutTransaction.TransactionID)
	suite.True(resp.InTransaction.Amount.Equal(decimal.RequireFromString("195.58")))
	suite.mockRateService.AssertExpectations(suite.T())
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateTransfer_RatesUnavailable() {
	ownerID := uuid.NewString()
	req := dto.TransferRequest{
		FromAccountID:    uuid.NewString(),
		ToAccountID:      uuid.NewString(),
		Amount:           decimal.NewFromInt(100),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "BGN",
	}

	suite.mockRateService.On("GetRates", mock.Anything).Return(nil, fmt.Errorf("rate source unreachable")).Once()

	body, _ := json.Marshal(req)
	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers", body, ownerID)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "Execute")
}

func (suite *AccountHandlerTestSuite) TestSettle_Conflict() {
	ownerID := uuid.NewString()
	sharedExpenseID := uuid.NewString()

	suite.mockSettlementService.On("Settle", mock.Anything, sharedExpenseID, ownerID).
		Return(nil, apperrors.ErrInvalidState).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/shared-expenses/"+sharedExpenseID+"/settle", nil, ownerID)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

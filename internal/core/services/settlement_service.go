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

// two parties split every shared expense evenly
var fairShareDivisor = decimal.NewFromInt(2)

// settlementService keeps the peer-to-peer shared-expense ledger. It is
// pure bookkeeping: nothing here touches account balances unless a row
// is explicitly linked to a ledger transaction at creation.
type settlementService struct {
	expenseRepo portsrepo.SharedExpenseRepositoryFacade
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(expenseRepo portsrepo.SharedExpenseRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{expenseRepo: expenseRepo}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RecordOwnPayment creates a row carrying only the creator's own
// contribution. The counterparty's payment lives in a separate row they
// create themselves; it is never recorded by mutating this one.
func (s *settlementService) RecordOwnPayment(ctx context.Context, req dto.CreateSharedExpenseRequest, creatorID string) (*domain.SharedExpense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CounterpartyID == creatorID {
		return nil, fmt.Errorf("%w: cannot share an expense with yourself", apperrors.ErrValidation)
	}
	if req.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount paid must be positive", apperrors.ErrValidation)
	}
	if req.TotalAmount.LessThan(req.AmountPaid) {
		return nil, fmt.Errorf("%w: total amount cannot be less than the amount paid", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	expense := domain.SharedExpense{
		SharedExpenseID:     uuid.NewString(),
		CreatorID:           creatorID,
		CounterpartyID:      req.CounterpartyID,
		Description:         req.Description,
		TotalAmount:         req.TotalAmount,
		CurrencyCode:        req.CurrencyCode,
		CreatorPaid:         req.AmountPaid,
		CounterpartyPaid:    decimal.Zero,
		Settled:             false,
		LinkedTransactionID: req.LinkedTransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.expenseRepo.SaveSharedExpense(ctx, expense); err != nil {
		logger.Error("Failed to save shared expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Shared expense recorded", slog.String("shared_expense_id", expense.SharedExpenseID), slog.String("counterparty_id", expense.CounterpartyID))
	return &expense, nil
}

// GetSharedExpenseByID retrieves a row visible to either party.
func (s *settlementService) GetSharedExpenseByID(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error) {
	expense, err := s.expenseRepo.FindSharedExpenseByID(ctx, sharedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shared expense %s: %w", sharedExpenseID, err)
	}
	if !expense.InvolvesUser(ownerID) {
		// Obscure existence from outsiders.
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// UpdateSharedExpense edits an unsettled row. Only the row's creator may
// edit it; a settled row is immutable.
func (s *settlementService) UpdateSharedExpense(ctx context.Context, sharedExpenseID string, req dto.UpdateSharedExpenseRequest, ownerID string) (*domain.SharedExpense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindSharedExpenseByID(ctx, sharedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shared expense %s: %w", sharedExpenseID, err)
	}
	if expense.CreatorID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	if expense.Settled {
		return nil, fmt.Errorf("%w: shared expense is settled", apperrors.ErrInvalidState)
	}

	updated := false
	if req.Description != nil {
		expense.Description = *req.Description
		updated = true
	}
	if req.TotalAmount != nil {
		expense.TotalAmount = *req.TotalAmount
		updated = true
	}
	if req.CreatorPaid != nil {
		expense.CreatorPaid = *req.CreatorPaid
		updated = true
	}
	if req.CounterpartyPaid != nil {
		expense.CounterpartyPaid = *req.CounterpartyPaid
		updated = true
	}
	if !updated {
		return expense, nil
	}

	if expense.CreatorPaid.IsNegative() || expense.CounterpartyPaid.IsNegative() {
		return nil, fmt.Errorf("%w: paid amounts cannot be negative", apperrors.ErrValidation)
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = ownerID

	if err := s.expenseRepo.UpdateSharedExpense(ctx, *expense); err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to update shared expense", slog.String("shared_expense_id", sharedExpenseID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Shared expense updated", slog.String("shared_expense_id", sharedExpenseID))
	return expense, nil
}

// Balance computes the fair-share net for one currency. Let A be what
// the caller recorded paying and B what the counterparty recorded:
// net = A - (A+B)/2. Positive means the counterparty owes the caller.
func (s *settlementService) Balance(ctx context.Context, userID string, counterpartyID string, currencyCode string) (decimal.Decimal, error) {
	balances, err := s.BalancesByCurrency(ctx, userID, counterpartyID)
	if err != nil {
		return decimal.Zero, err
	}
	return balances[currencyCode], nil
}

// BalancesByCurrency computes one fair-share net per currency over the
// unsettled rows between the pair. Lock-free read; currencies are never
// combined into one number.
func (s *settlementService) BalancesByCurrency(ctx context.Context, userID string, counterpartyID string) (map[string]decimal.Decimal, error) {
	expenses, err := s.expenseRepo.ListUnsettledBetween(ctx, userID, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled shared expenses: %w", err)
	}

	paidByUser := make(map[string]decimal.Decimal)
	paidByCounterparty := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		switch e.CreatorID {
		case userID:
			paidByUser[e.CurrencyCode] = paidByUser[e.CurrencyCode].Add(e.CreatorPaid)
		case counterpartyID:
			paidByCounterparty[e.CurrencyCode] = paidByCounterparty[e.CurrencyCode].Add(e.CreatorPaid)
		}
	}

	balances := make(map[string]decimal.Decimal)
	for ccy := range paidByUser {
		balances[ccy] = decimal.Zero
	}
	for ccy := range paidByCounterparty {
		balances[ccy] = decimal.Zero
	}
	for ccy := range balances {
		a := paidByUser[ccy]
		b := paidByCounterparty[ccy]
		fairShare := a.Add(b).Div(fairShareDivisor)
		balances[ccy] = a.Sub(fairShare)
	}
	return balances, nil
}

// Settle transitions the row to its terminal settled state. Either party
// may settle; a second settle attempt fails with ErrInvalidState and
// leaves settledAt untouched.
func (s *settlementService) Settle(ctx context.Context, sharedExpenseID string, ownerID string) (*domain.SharedExpense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindSharedExpenseByID(ctx, sharedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shared expense %s: %w", sharedExpenseID, err)
	}
	if !expense.InvolvesUser(ownerID) {
		return nil, apperrors.ErrNotFound
	}

	settled, err := s.expenseRepo.MarkSettled(ctx, sharedExpenseID, time.Now().UTC(), ownerID)
	if err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to settle shared expense", slog.String("shared_expense_id", sharedExpenseID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Shared expense settled", slog.String("shared_expense_id", sharedExpenseID))
	return settled, nil
}

// ListSharedExpenses retrieves paginated history with one counterparty.
func (s *settlementService) ListSharedExpenses(ctx context.Context, ownerID string, params dto.ListSharedExpensesParams) (*dto.ListSharedExpensesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	expenses, nextToken, err := s.expenseRepo.ListSharedExpensesBetween(ctx, ownerID, params.CounterpartyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}

	res := make([]dto.SharedExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = dto.ToSharedExpenseResponse(&expenses[i])
	}
	return &dto.ListSharedExpensesResponse{
		SharedExpenses: res,
		NextToken:      nextToken,
	}, nil
}

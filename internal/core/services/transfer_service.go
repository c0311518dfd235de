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
	"github.com/finledger/ledgerd/internal/core/fx"
	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
	"github.com/finledger/ledgerd/internal/dto"
	"github.com/finledger/ledgerd/internal/middleware"
)

const (
	transferOutNote = "Transfer Out"
	transferInNote  = "Transfer In"
)

// transferService coordinates a currency-converted transfer between two
// accounts as one atomic operation.
type transferService struct {
	accountSvc portssvc.AccountReaderSvc
	txnRepo    portsrepo.TransactionRepositoryFacade
}

// NewTransferService creates a new transfer service.
func NewTransferService(accountSvc portssvc.AccountReaderSvc, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		accountSvc: accountSvc,
		txnRepo:    txnRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Execute debits the source account, credits the destination with the
// converted amount and records the two audit transactions. All four
// effects commit together or none do; a transfer is never observable
// half-applied.
func (s *transferService) Execute(ctx context.Context, req dto.TransferRequest, rates domain.RateTable, ownerID string) (*portssvc.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer between an account and itself", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	fromAccount, err := s.accountSvc.GetAccountByID(ctx, req.FromAccountID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("source account: %w", err)
	}
	toAccount, err := s.accountSvc.GetAccountByID(ctx, req.ToAccountID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("destination account: %w", err)
	}

	// The declared currencies are a precondition, not a hint: a mismatch
	// here would silently corrupt the balance invariant.
	if fromAccount.CurrencyCode != req.FromCurrencyCode {
		return nil, fmt.Errorf("%w: source account is denominated in %s, not %s", apperrors.ErrCurrencyMismatch, fromAccount.CurrencyCode, req.FromCurrencyCode)
	}
	if toAccount.CurrencyCode != req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: destination account is denominated in %s, not %s", apperrors.ErrCurrencyMismatch, toAccount.CurrencyCode, req.ToCurrencyCode)
	}

	convertedAmount, err := fx.Convert(req.Amount, req.FromCurrencyCode, req.ToCurrencyCode, rates)
	if err != nil {
		return nil, err
	}
	if convertedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: converted amount %s is not positive", apperrors.ErrValidation, convertedAmount.String())
	}

	now := time.Now().UTC()
	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("%s -> %s", fromAccount.Name, toAccount.Name)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     ownerID,
		LastUpdatedAt: now,
		LastUpdatedBy: ownerID,
	}
	outTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		AccountID:     fromAccount.AccountID,
		Kind:          domain.Expense,
		Amount:        req.Amount,
		CurrencyCode:  fromAccount.CurrencyCode,
		OccurredAt:    now,
		Notes:         fmt.Sprintf("%s: %s", transferOutNote, notes),
		AuditFields:   audit,
	}
	inTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		AccountID:     toAccount.AccountID,
		Kind:          domain.Income,
		Amount:        convertedAmount,
		CurrencyCode:  toAccount.CurrencyCode,
		OccurredAt:    now,
		Notes:         fmt.Sprintf("%s: %s", transferInNote, notes),
		AuditFields:   audit,
	}

	changes := []portsrepo.BalanceChange{
		{
			AccountID:        fromAccount.AccountID,
			OwnerID:          ownerID,
			Delta:            req.Amount.Neg(),
			ExpectedCurrency: fromAccount.CurrencyCode,
		},
		{
			AccountID:        toAccount.AccountID,
			OwnerID:          ownerID,
			Delta:            convertedAmount,
			ExpectedCurrency: toAccount.CurrencyCode,
		},
	}

	if err := s.txnRepo.SaveTransferPair(ctx, outTxn, inTxn, changes); err != nil {
		if !isCallerError(err) {
			logger.Error("Failed to save transfer", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transfer executed",
		slog.String("from_account_id", fromAccount.AccountID),
		slog.String("to_account_id", toAccount.AccountID),
		slog.String("amount", req.Amount.String()),
		slog.String("converted_amount", convertedAmount.String()),
	)
	return &portssvc.TransferResult{OutTransaction: outTxn, InTransaction: inTxn}, nil
}

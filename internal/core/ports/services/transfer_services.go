package services

import (
	"context"

	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/dto"
)

// TransferResult holds the two audit transactions a transfer creates.
type TransferResult struct {
	OutTransaction domain.Transaction
	InTransaction  domain.Transaction
}

// TransferSvcFacade coordinates currency-converted transfers.
type TransferSvcFacade interface {
	// Execute debits the source, credits the destination with the
	// converted amount and records both audit transactions as one atomic
	// unit. The rate table is supplied by the caller, already resolved.
	Execute(ctx context.Context, req dto.TransferRequest, rates domain.RateTable, ownerID string) (*TransferResult, error)
}

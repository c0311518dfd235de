package dto

import (
	"github.com/shopspring/decimal"
)

// TransferRequest defines the data needed for a currency-converted
// transfer between two accounts of the same owner.
type TransferRequest struct {
	FromAccountID    string          `json:"fromAccountID" binding:"required"`
	ToAccountID      string          `json:"toAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Notes            string          `json:"notes"`
}

// TransferResponse returns the two audit transactions a transfer creates.
type TransferResponse struct {
	OutTransaction TransactionResponse `json:"outTransaction"`
	InTransaction  TransactionResponse `json:"inTransaction"`
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finledger/ledgerd/internal/core/domain"
)

func TestTransaction_Delta(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "income adds the amount",
			txn: domain.Transaction{
				Kind:   domain.Income,
				Amount: decimal.NewFromInt(100),
			},
			want: decimal.NewFromInt(100),
		},
		{
			name: "expense subtracts the amount",
			txn: domain.Transaction{
				Kind:   domain.Expense,
				Amount: decimal.NewFromInt(40),
			},
			want: decimal.NewFromInt(-40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.Delta()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, domain.Income.Valid())
	assert.True(t, domain.Expense.Valid())
	assert.False(t, domain.TransactionKind("TRANSFER").Valid())
	assert.False(t, domain.TransactionKind("income").Valid())
	assert.False(t, domain.TransactionKind("").Valid())
}

func TestSharedExpense_InvolvesUser(t *testing.T) {
	e := domain.SharedExpense{
		CreatorID:      "alice",
		CounterpartyID: "bob",
	}

	assert.True(t, e.InvolvesUser("alice"))
	assert.True(t, e.InvolvesUser("bob"))
	assert.False(t, e.InvolvesUser("mallory"))
}

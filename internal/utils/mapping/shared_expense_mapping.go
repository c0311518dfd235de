package mapping

import (
	"github.com/finledger/ledgerd/internal/core/domain"
	"github.com/finledger/ledgerd/internal/models"
)

// ToModelSharedExpense converts a domain SharedExpense to a model SharedExpense
func ToModelSharedExpense(d domain.SharedExpense) models.SharedExpense {
	return models.SharedExpense{
		SharedExpenseID:     d.SharedExpenseID,
		CreatorID:           d.CreatorID,
		CounterpartyID:      d.CounterpartyID,
		Description:         d.Description,
		TotalAmount:         d.TotalAmount,
		CurrencyCode:        d.CurrencyCode,
		CreatorPaid:         d.CreatorPaid,
		CounterpartyPaid:    d.CounterpartyPaid,
		Settled:             d.Settled,
		SettledAt:           d.SettledAt,
		LinkedTransactionID: d.LinkedTransactionID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSharedExpense converts a model SharedExpense to a domain SharedExpense
func ToDomainSharedExpense(m models.SharedExpense) domain.SharedExpense {
	return domain.SharedExpense{
		SharedExpenseID:     m.SharedExpenseID,
		CreatorID:           m.CreatorID,
		CounterpartyID:      m.CounterpartyID,
		Description:         m.Description,
		TotalAmount:         m.TotalAmount,
		CurrencyCode:        m.CurrencyCode,
		CreatorPaid:         m.CreatorPaid,
		CounterpartyPaid:    m.CounterpartyPaid,
		Settled:             m.Settled,
		SettledAt:           m.SettledAt,
		LinkedTransactionID: m.LinkedTransactionID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSharedExpenseSlice converts a slice of model SharedExpenses to domain SharedExpenses
func ToDomainSharedExpenseSlice(ms []models.SharedExpense) []domain.SharedExpense {
	ds := make([]domain.SharedExpense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSharedExpense(m)
	}
	return ds
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		SharedExpenseRepo: newPgxSharedExpenseRepository(dbPool),
		RateSnapshotRepo:  newPgxRateSnapshotRepository(dbPool),
	}
}

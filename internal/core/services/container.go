package services

import (
	"time"

	portsrepo "github.com/finledger/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledgerd/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Account     portssvc.AccountSvcFacade
	Transaction portssvc.TransactionSvcFacade
	Transfer    portssvc.TransferSvcFacade
	Settlement  portssvc.SettlementSvcFacade
	Rates       portssvc.RateSvcFacade
}

// NewContainer wires the services over the repository provider.
func NewContainer(repos *portsrepo.RepositoryProvider, rateSource portssvc.RateSource, ratesRefreshInterval time.Duration) *Container {
	container := &Container{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Transfer = NewTransferService(container.Account, repos.TransactionRepo)
	container.Settlement = NewSettlementService(repos.SharedExpenseRepo)
	container.Rates = NewRateService(rateSource, repos.RateSnapshotRepo, ratesRefreshInterval)

	return container
}

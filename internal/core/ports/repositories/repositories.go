package repositories

// RepositoryProvider aggregates the repositories the service container
// needs, so wiring stays in one place.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	SharedExpenseRepo SharedExpenseRepositoryFacade
	RateSnapshotRepo  RateSnapshotRepository
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProfileRepo      ProfileRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	ContractRepo     ContractRepositoryFacade
	PaymentRepo      PaymentRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}

package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main and pick the facades they need.
type ServiceContainer struct {
	Profile        ProfileSvcFacade
	Token          TokenSvcFacade
	GoogleOAuth    GoogleOAuthHandlerSvcFacade
	Client         ClientSvcFacade
	Invoice        InvoiceSvcFacade
	Contract       ContractSvcFacade
	PublicDocument PublicDocumentSvcFacade
	Notification   NotificationSvcFacade
	Payment        PaymentSvcFacade
	Dashboard      DashboardSvc
}

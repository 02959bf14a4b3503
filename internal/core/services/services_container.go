package services

import (
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/pkg/config"
)

// Gateways are the outbound adapters services talk to.
type Gateways struct {
	Email     gateways.EmailSender
	Events    gateways.EventPublisher
	Analytics *utils.PosthogClientWrapper
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Profile = NewProfileService(repos.ProfileRepo)
	container.Token = NewTokenService(cfg, container.Profile)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)
	container.Client = NewClientService(repos.ClientRepo)

	// The dispatcher comes first since every lifecycle change queues an email through it.
	container.Notification = NewNotificationService(
		repos.NotificationRepo,
		gw.Email,
		WithDocumentReaders(repos.InvoiceRepo, repos.ContractRepo),
		WithEmailDefaults(cfg.PublicURL, cfg.EmailFrom),
	)

	lifecycle := []LifecycleOption{
		WithNotifier(container.Notification),
		WithEventPublisher(gw.Events),
		WithAnalytics(gw.Analytics),
	}

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, container.Client, cfg.PublicURL, lifecycle...)
	container.Contract = NewContractService(repos.ContractRepo, container.Client, cfg.PublicURL, lifecycle...)
	container.PublicDocument = NewPublicDocumentService(
		repos.InvoiceRepo,
		repos.ContractRepo,
		repos.ProfileRepo,
		cfg.RazorpayKeyID,
		lifecycle...,
	)
	container.Payment = NewPaymentService(
		repos.InvoiceRepo,
		repos.PaymentRepo,
		repos.ProfileRepo,
		CheckoutKeys{KeyID: cfg.RazorpayKeyID, KeySecret: cfg.RazorpayKeySecret},
		lifecycle...,
	)
	container.Dashboard = NewDashboardService(repos.InvoiceRepo, repos.ContractRepo, repos.ClientRepo)

	return container
}

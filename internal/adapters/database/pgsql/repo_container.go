package pgsql

import (
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:      newPgxProfileRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
		ContractRepo:     newPgxContractRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}

package services_test

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) UpdateRefreshToken(ctx context.Context, profileID string, hash string, expiresAt *time.Time) error {
	return m.Called(ctx, profileID, hash, expiresAt).Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, ownerID string, search string) ([]domain.Client, error) {
	args := m.Called(ctx, ownerID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) CountClients(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	return m.Called(ctx, ownerID, clientID).Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByShareToken(ctx context.Context, shareToken string) (*domain.Invoice, error) {
	args := m.Called(ctx, shareToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumInvoicesByMonth(ctx context.Context, ownerID string) ([]domain.InvoiceTotal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceTotal), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, allowedFrom []domain.InvoiceStatus) error {
	return m.Called(ctx, invoice, allowedFrom).Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	return m.Called(ctx, ownerID, invoiceID).Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, ownerID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ContractRepository ---
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	args := m.Called(ctx, ownerID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) FindContractByShareToken(ctx context.Context, shareToken string) (*domain.Contract, error) {
	args := m.Called(ctx, shareToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractRepository) CountContractsByStatus(ctx context.Context, ownerID string) (map[domain.ContractStatus]int, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ContractStatus]int), args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) UpdateContractStatus(ctx context.Context, contract domain.Contract, allowedFrom []domain.ContractStatus) error {
	return m.Called(ctx, contract, allowedFrom).Error(0)
}

func (m *MockContractRepository) DeleteContract(ctx context.Context, ownerID string, contractID string) error {
	return m.Called(ctx, ownerID, contractID).Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) SaveSuccessfulPayment(ctx context.Context, payment domain.Payment, allowedFrom []domain.InvoiceStatus) error {
	return m.Called(ctx, payment, allowedFrom).Error(0)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindNotificationContext(ctx context.Context, notificationID string) (*domain.NotificationContext, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationContext), args.Error(1)
}

func (m *MockNotificationRepository) ListNotificationsByDocument(ctx context.Context, documentID string) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, record domain.NotificationRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockNotificationRepository) UpdateNotificationStatus(ctx context.Context, notificationID string, status domain.NotificationStatus, sentAt time.Time, errorMessage *string) error {
	return m.Called(ctx, notificationID, status, sentAt, errorMessage).Error(0)
}

// --- Mock gateways ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg domain.EmailMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	return m.Called(ctx, event).Error(0)
}

// --- Mock NotificationQueue ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Queue(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}

func (m *MockNotifier) QueueAndDispatch(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}

// sentRecord is what a successful QueueAndDispatch hands back.
func sentRecord(record domain.NotificationRecord) *domain.NotificationRecord {
	record.NotificationID = "3f0c2c1e-7a51-4b64-9a0e-1d6a0f3c9b10"
	record.Status = domain.NotificationSent
	return &record
}

func strPtr(s string) *string { return &s }

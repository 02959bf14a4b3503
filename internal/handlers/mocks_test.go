package handlers_test

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock ProfileService ---
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) UpdateProfile(ctx context.Context, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, profileID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) UpdateRefreshToken(ctx context.Context, profileID string, refreshTokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, profileID, refreshTokenHash, expiresAt).Error(0)
}
func (m *MockProfileService) ClearRefreshToken(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}
func (m *MockProfileService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) Authenticate(ctx context.Context, email, password string) (*domain.Profile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) FindOrCreateGoogleProfile(ctx context.Context, info domain.GoogleUserInfo) (*domain.Profile, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

var _ portssvc.ProfileSvcFacade = (*MockProfileService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, profileID string, refreshTokenString string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClient(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) ListClients(ctx context.Context, ownerID string, params dto.ListClientsParams) ([]domain.Client, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) CreateClient(ctx context.Context, ownerID string, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	return m.Called(ctx, ownerID, clientID).Error(0)
}
func (m *MockClientService) ResolveClient(ctx context.Context, ownerID string, clientID *string, contact domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) GetInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID))
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Invoice), next, args.Error(2)
}
func (m *MockInvoiceService) ShareLink(ctx context.Context, ownerID string, invoiceID string) (string, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.String(0), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, req))
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, ownerID string, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID, req))
}
func (m *MockInvoiceService) SendInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID))
}
func (m *MockInvoiceService) DuplicateInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID))
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	return m.Called(ctx, ownerID, invoiceID).Error(0)
}
func (m *MockInvoiceService) MarkOverdue(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock ContractService ---
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) contract(args mock.Arguments) (*domain.Contract, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) GetContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, ownerID, contractID))
}
func (m *MockContractService) ListContracts(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Contract, *string, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Contract), next, args.Error(2)
}
func (m *MockContractService) ShareLink(ctx context.Context, ownerID string, contractID string) (string, error) {
	args := m.Called(ctx, ownerID, contractID)
	return args.String(0), args.Error(1)
}
func (m *MockContractService) CreateContract(ctx context.Context, ownerID string, req dto.ContractRequest) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, ownerID, req))
}
func (m *MockContractService) UpdateContract(ctx context.Context, ownerID string, contractID string, req dto.ContractRequest) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, ownerID, contractID, req))
}
func (m *MockContractService) SendContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, ownerID, contractID))
}
func (m *MockContractService) DuplicateContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	return m.contract(m.Called(ctx, ownerID, contractID))
}
func (m *MockContractService) DeleteContract(ctx context.Context, ownerID string, contractID string) error {
	return m.Called(ctx, ownerID, contractID).Error(0)
}

var _ portssvc.ContractSvcFacade = (*MockContractService)(nil)

// --- Mock PublicDocumentService ---
type MockPublicDocumentService struct {
	mock.Mock
}

func (m *MockPublicDocumentService) ViewInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicInvoice, error) {
	args := m.Called(ctx, shareToken, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicInvoice), args.Error(1)
}
func (m *MockPublicDocumentService) ApproveInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.Invoice, *domain.CheckoutDetails, error) {
	args := m.Called(ctx, shareToken, session)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Get(1).(*domain.CheckoutDetails), args.Error(2)
}
func (m *MockPublicDocumentService) RejectInvoice(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Invoice, error) {
	args := m.Called(ctx, shareToken, reason, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockPublicDocumentService) ViewContract(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicContract, error) {
	args := m.Called(ctx, shareToken, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicContract), args.Error(1)
}
func (m *MockPublicDocumentService) AcceptContract(ctx context.Context, shareToken string, signatureName string, session domain.Session) (*domain.Contract, error) {
	args := m.Called(ctx, shareToken, signatureName, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockPublicDocumentService) RejectContract(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Contract, error) {
	args := m.Called(ctx, shareToken, reason, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

var _ portssvc.PublicDocumentSvcFacade = (*MockPublicDocumentService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CheckoutConfig(ctx context.Context, shareToken string) (*domain.CheckoutDetails, error) {
	args := m.Called(ctx, shareToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutDetails), args.Error(1)
}
func (m *MockPaymentService) RecordPaymentSuccess(ctx context.Context, shareToken string, req dto.PaymentSuccessRequest) (*domain.Payment, error) {
	args := m.Called(ctx, shareToken, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) RecordPaymentFailure(ctx context.Context, shareToken string, req dto.PaymentFailureRequest) (*domain.Payment, error) {
	args := m.Called(ctx, shareToken, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, req dto.DispatchRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
func (m *MockNotificationService) Queue(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}
func (m *MockNotificationService) QueueAndDispatch(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}
func (m *MockNotificationService) ListNotifications(ctx context.Context, ownerID string, documentID string) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, ownerID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}
func (m *MockNotificationService) Resend(ctx context.Context, ownerID string, notificationID string) (map[string]any, error) {
	args := m.Called(ctx, ownerID, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
func (m *MockNotificationService) ResendAny(ctx context.Context, notificationID string) (map[string]any, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

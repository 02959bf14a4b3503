package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/google/uuid"
)

const (
	defaultMerchantName      = "Dustbill"
	defaultFailureReason     = "Payment failed"
	msgCheckoutNotConfigured = "Online payment is not available for this invoice."
)

// payableStatuses are the invoice statuses that accept checkout callbacks.
var payableStatuses = []domain.InvoiceStatus{domain.InvoiceStatusApproved, domain.InvoiceStatusPending}

// CheckoutKeys are the payment gateway credentials.
type CheckoutKeys struct {
	KeyID     string
	KeySecret string
}

type paymentService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	paymentRepo portsrepo.PaymentRepositoryFacade
	profiles    portsrepo.ProfileReader
	keys        CheckoutKeys
	hooks       lifecycleHooks
}

// NewPaymentService creates the checkout callback recorder.
func NewPaymentService(
	invoiceRepo portsrepo.InvoiceReader,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	profiles portsrepo.ProfileReader,
	keys CheckoutKeys,
	options ...LifecycleOption,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		profiles:    profiles,
		keys:        keys,
		hooks:       newLifecycleHooks(options),
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// newCheckoutDetails fills the payment widget for inv. owner may be nil.
func newCheckoutDetails(inv *domain.Invoice, owner *domain.Profile, keyID string) domain.CheckoutDetails {
	details := domain.CheckoutDetails{
		KeyID:         keyID,
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.Number(),
		Amount:        inv.Amount,
		AmountMinor:   domain.MinorUnits(inv.Amount),
		Currency:      inv.Currency,
		MerchantName:  defaultMerchantName,
	}
	if owner != nil {
		details.MerchantName = owner.DisplayName()
	}
	if inv.Client != nil {
		details.PrefillName = inv.Client.Name
		details.PrefillEmail = inv.Client.Email
	}
	return details
}

// payableInvoice resolves a share token to an invoice that may still be paid.
func (s *paymentService) payableInvoice(ctx context.Context, token string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByShareToken(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve invoice share token")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if !inv.CanPay() {
		return nil, fmt.Errorf("invoice is %s: %w", inv.Status, apperrors.ErrInvalidTransition)
	}
	return inv, nil
}

func (s *paymentService) owner(ctx context.Context, ownerID string) *domain.Profile {
	p, err := s.profiles.FindProfileByID(ctx, ownerID)
	if err != nil {
		s.LogDebug(ctx, "Invoice owner not loaded", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
		return nil
	}
	return p
}

func (s *paymentService) CheckoutConfig(ctx context.Context, shareToken string) (*domain.CheckoutDetails, error) {
	if s.keys.KeyID == "" {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, msgCheckoutNotConfigured, nil)
	}
	inv, err := s.payableInvoice(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	details := newCheckoutDetails(inv, s.owner(ctx, inv.UserID), s.keys.KeyID)
	return &details, nil
}

func (s *paymentService) RecordPaymentSuccess(ctx context.Context, shareToken string, req dto.PaymentSuccessRequest) (*domain.Payment, error) {
	txID := strings.TrimSpace(req.TransactionID)
	if txID == "" {
		return nil, apperrors.ValidationError("transaction_id is required")
	}
	inv, err := s.payableInvoice(ctx, shareToken)
	if err != nil {
		return nil, err
	}

	if req.OrderID != "" && req.Signature != "" {
		if !utils.VerifyCheckoutSignature(req.OrderID, txID, req.Signature, s.keys.KeySecret) {
			s.LogInfo(ctx, "Checkout signature mismatch", slog.String("invoice_id", inv.InvoiceID))
			return nil, apperrors.NewUnauthorizedError("Payment signature verification failed.")
		}
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = domain.DefaultPaymentMethod
	}
	now := s.Now()
	payment := domain.Payment{
		PaymentID:         uuid.NewString(),
		InvoiceID:         inv.InvoiceID,
		ExternalPaymentID: txID,
		OrderID:           req.OrderID,
		Amount:            inv.Amount,
		Currency:          inv.Currency,
		Status:            domain.PaymentStatusSuccess,
		PaymentMethod:     method,
		CreatedAt:         now,
	}
	if err := s.paymentRepo.SaveSuccessfulPayment(ctx, payment, payableStatuses); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", inv.InvoiceID))
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.LogInfo(ctx, "Payment recorded", slog.String("invoice_id", inv.InvoiceID), slog.String("payment_id", payment.PaymentID))

	inv.Status = domain.InvoiceStatusPaid
	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   invoiceNotification(inv, domain.EmailPaymentReceived, ownerEmail(s.owner(ctx, inv.UserID))),
		event:          domain.NewDocumentEvent(domain.EventInvoicePaid, inv.InvoiceID, inv.UserID, string(inv.Status), now),
		analyticsEvent: utils.EventInvoicePaid,
		properties: map[string]any{
			"invoice_id":     inv.InvoiceID,
			"payment_method": method,
			"currency":       string(inv.Currency),
			"amount":         inv.Amount.String(),
		},
	})
	return &payment, nil
}

func (s *paymentService) RecordPaymentFailure(ctx context.Context, shareToken string, req dto.PaymentFailureRequest) (*domain.Payment, error) {
	inv, err := s.payableInvoice(ctx, shareToken)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Error.Description)
	if description == "" {
		description = defaultFailureReason
	}
	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		InvoiceID:        inv.InvoiceID,
		Amount:           inv.Amount,
		Currency:         inv.Currency,
		Status:           domain.PaymentStatusFailed,
		PaymentMethod:    domain.DefaultPaymentMethod,
		ErrorDescription: description,
		CreatedAt:        s.Now(),
	}
	if id, ok := req.Error.Metadata["payment_id"].(string); ok {
		payment.ExternalPaymentID = id
	}
	if id, ok := req.Error.Metadata["order_id"].(string); ok {
		payment.OrderID = id
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to record failed payment", slog.String("invoice_id", inv.InvoiceID))
		return nil, fmt.Errorf("failed to record payment failure: %w", err)
	}
	s.LogInfo(ctx, "Payment failure recorded", slog.String("invoice_id", inv.InvoiceID), slog.String("reason", description))
	return &payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

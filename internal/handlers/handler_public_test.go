package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PublicHandlerTestSuite struct {
	handlerSuite
	ownerID string
	token   string
	invoice *domain.Invoice
}

func (s *PublicHandlerTestSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.ownerID = uuid.NewString()
	s.token = uuid.NewString()
	now := time.Now().UTC()
	s.invoice = &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		UserID:     s.ownerID,
		Status:     domain.InvoiceStatusPending,
		Amount:     decimal.RequireFromString("250.50"),
		Currency:   domain.CurrencyUSD,
		ShareToken: s.token,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func (s *PublicHandlerTestSuite) TestViewInvoice_Anonymous() {
	doc := &domain.PublicInvoice{
		Invoice: s.invoice,
		Sender:  domain.Sender{Name: "Ada Lovelace", Email: "ada@example.com"},
		View:    domain.SelectInvoiceView(s.invoice, domain.AnonymousSession),
	}
	s.mockPublic.On("ViewInvoice", mock.AnythingOfType("*context.valueCtx"), s.token, domain.AnonymousSession).Return(doc, nil).Once()

	w := s.serve(http.MethodGet, "/public/invoices/"+s.token, nil, "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.PublicInvoiceResponse
	s.decode(w, &body)
	s.Equal(s.invoice.InvoiceID, body.Invoice.ID)
	s.Equal(domain.RecipientActionable, body.View.Kind)
	s.Equal("Ada Lovelace", body.From.Name)
}

func (s *PublicHandlerTestSuite) TestViewInvoice_OwnerSessionIsPassedThrough() {
	owner := domain.Session{UserID: s.ownerID}
	doc := &domain.PublicInvoice{Invoice: s.invoice, View: domain.SelectInvoiceView(s.invoice, owner)}
	s.mockPublic.On("ViewInvoice", mock.Anything, s.token, owner).Return(doc, nil).Once()

	w := s.serve(http.MethodGet, "/public/invoices/"+s.token, nil, s.ownerID)

	s.Equal(http.StatusOK, w.Code)
	var body dto.PublicInvoiceResponse
	s.decode(w, &body)
	s.Equal(domain.OwnerPreview, body.View.Kind)
	s.Empty(body.View.Actions)
}

func (s *PublicHandlerTestSuite) TestViewInvoice_UnknownToken() {
	s.mockPublic.On("ViewInvoice", mock.Anything, "missing", domain.AnonymousSession).
		Return(nil, fmt.Errorf("invoice by token: %w", apperrors.ErrNotFound)).Once()

	w := s.serve(http.MethodGet, "/public/invoices/missing", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Invoice not found", s.errorMessage(w))
}

func (s *PublicHandlerTestSuite) TestApproveInvoice_ReturnsCheckout() {
	approved := *s.invoice
	approved.Status = domain.InvoiceStatusApproved
	checkout := &domain.CheckoutDetails{
		KeyID:         "rzp_test_key",
		InvoiceID:     approved.InvoiceID,
		Amount:        approved.Amount,
		AmountMinor:   25050,
		Currency:      domain.CurrencyUSD,
		MerchantName:  "Ada Lovelace",
		InvoiceNumber: approved.Number(),
	}
	s.mockPublic.On("ApproveInvoice", mock.Anything, s.token, domain.AnonymousSession).Return(&approved, checkout, nil).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/approve", nil, "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ApproveInvoiceResponse
	s.decode(w, &body)
	s.Equal(domain.InvoiceStatusApproved, body.Invoice.Status)
	s.Equal(int64(25050), body.Checkout.AmountMinor)
	s.Equal("rzp_test_key", body.Checkout.KeyID)
}

func (s *PublicHandlerTestSuite) TestApproveInvoice_OwnerForbidden() {
	s.mockPublic.On("ApproveInvoice", mock.Anything, s.token, domain.Session{UserID: s.ownerID}).
		Return(nil, nil, apperrors.NewForbiddenError("You cannot respond to your own invoice.")).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/approve", nil, s.ownerID)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("You cannot respond to your own invoice.", s.errorMessage(w))
}

func (s *PublicHandlerTestSuite) TestRejectInvoice_ReasonRequired() {
	s.mockPublic.On("RejectInvoice", mock.Anything, s.token, "   ", domain.AnonymousSession).
		Return(nil, apperrors.ValidationError("Please provide a reason for rejection.")).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/reject", dto.RejectRequest{Reason: "   "}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Please provide a reason for rejection.", s.errorMessage(w))
}

func (s *PublicHandlerTestSuite) TestRejectInvoice_AlreadyTerminal() {
	s.mockPublic.On("RejectInvoice", mock.Anything, s.token, "Wrong amount", domain.AnonymousSession).
		Return(nil, fmt.Errorf("failed to reject invoice: %w", apperrors.ErrInvalidTransition)).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/reject", dto.RejectRequest{Reason: "Wrong amount"}, "")

	s.Equal(http.StatusConflict, w.Code)
}

func (s *PublicHandlerTestSuite) TestCheckoutConfig_NotConfigured() {
	s.mockPayment.On("CheckoutConfig", mock.Anything, s.token).
		Return(nil, apperrors.NewAppError(http.StatusServiceUnavailable, "Online payment is not available for this invoice.", nil)).Once()

	w := s.serve(http.MethodGet, "/public/invoices/"+s.token+"/payments/checkout", nil, "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *PublicHandlerTestSuite) TestPaymentSuccess_Recorded() {
	req := dto.PaymentSuccessRequest{TransactionID: "pay_123", OrderID: "order_1", Signature: "sig", PaymentMethod: "card"}
	payment := &domain.Payment{
		PaymentID:         uuid.NewString(),
		InvoiceID:         s.invoice.InvoiceID,
		ExternalPaymentID: "pay_123",
		Amount:            s.invoice.Amount,
		Currency:          s.invoice.Currency,
		Status:            domain.PaymentStatusSuccess,
		CreatedAt:         time.Now().UTC(),
	}
	s.mockPayment.On("RecordPaymentSuccess", mock.Anything, s.token, req).Return(payment, nil).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/payments/success", req, "")

	s.Equal(http.StatusCreated, w.Code)
	var body dto.PaymentResponse
	s.decode(w, &body)
	s.Equal("pay_123", body.ExternalPaymentID)
	s.Equal(domain.PaymentStatusSuccess, body.Status)
}

func (s *PublicHandlerTestSuite) TestPaymentSuccess_SignatureMismatch() {
	req := dto.PaymentSuccessRequest{TransactionID: "pay_123", OrderID: "order_1", Signature: "forged"}
	s.mockPayment.On("RecordPaymentSuccess", mock.Anything, s.token, req).
		Return(nil, fmt.Errorf("payment signature: %w", apperrors.ErrUnauthorized)).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/payments/success", req, "")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *PublicHandlerTestSuite) TestPaymentSuccess_TransactionIDRequired() {
	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/payments/success", map[string]string{"order_id": "order_1"}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockPayment.AssertNotCalled(s.T(), "RecordPaymentSuccess", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PublicHandlerTestSuite) TestPaymentFailure_Recorded() {
	req := dto.PaymentFailureRequest{Error: dto.PaymentErrorDetails{Description: "Card declined"}}
	payment := &domain.Payment{PaymentID: uuid.NewString(), InvoiceID: s.invoice.InvoiceID, Status: domain.PaymentStatusFailed, ErrorDescription: "Card declined"}
	s.mockPayment.On("RecordPaymentFailure", mock.Anything, s.token, req).Return(payment, nil).Once()

	w := s.serve(http.MethodPost, "/public/invoices/"+s.token+"/payments/failure", req, "")

	s.Equal(http.StatusCreated, w.Code)
	var body dto.PaymentResponse
	s.decode(w, &body)
	s.Equal("Card declined", body.ErrorDescription)
}

func (s *PublicHandlerTestSuite) TestAcceptContract_WithoutBody() {
	signed := time.Now().UTC()
	contract := &domain.Contract{ContractID: uuid.NewString(), UserID: s.ownerID, Status: domain.ContractStatusAccepted, ShareToken: s.token, SignedDate: &signed}
	s.mockPublic.On("AcceptContract", mock.Anything, s.token, "", domain.AnonymousSession).Return(contract, nil).Once()

	w := s.serve(http.MethodPost, "/public/contracts/"+s.token+"/accept", nil, "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ContractResponse
	s.decode(w, &body)
	s.Equal(domain.ContractStatusAccepted, body.Status)
	s.NotNil(body.SignedDate)
}

func (s *PublicHandlerTestSuite) TestAcceptContract_WithSignature() {
	contract := &domain.Contract{ContractID: uuid.NewString(), UserID: s.ownerID, Status: domain.ContractStatusAccepted, ShareToken: s.token}
	s.mockPublic.On("AcceptContract", mock.Anything, s.token, "Grace Hopper", domain.AnonymousSession).Return(contract, nil).Once()

	w := s.serve(http.MethodPost, "/public/contracts/"+s.token+"/accept", dto.AcceptContractRequest{SignatureName: "Grace Hopper"}, "")

	s.Equal(http.StatusOK, w.Code)
}

func (s *PublicHandlerTestSuite) TestRejectContract() {
	reason := "Scope changed"
	contract := &domain.Contract{ContractID: uuid.NewString(), UserID: s.ownerID, Status: domain.ContractStatusRejected, ShareToken: s.token, RejectionReason: &reason}
	s.mockPublic.On("RejectContract", mock.Anything, s.token, reason, domain.AnonymousSession).Return(contract, nil).Once()

	w := s.serve(http.MethodPost, "/public/contracts/"+s.token+"/reject", dto.RejectRequest{Reason: reason}, "")

	s.Equal(http.StatusOK, w.Code)
	var body dto.ContractResponse
	s.decode(w, &body)
	s.Require().NotNil(body.RejectionReason)
	s.Equal(reason, *body.RejectionReason)
}

func TestPublicHandler(t *testing.T) {
	suite.Run(t, new(PublicHandlerTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PublicDocumentServiceTestSuite struct {
	suite.Suite
	mockInvoices  *MockInvoiceRepository
	mockContracts *MockContractRepository
	mockProfiles  *MockProfileRepository
	mockNotifier  *MockNotifier
	service       portssvc.PublicDocumentSvcFacade
	owner         *domain.Profile
}

func (suite *PublicDocumentServiceTestSuite) SetupTest() {
	suite.mockInvoices = new(MockInvoiceRepository)
	suite.mockContracts = new(MockContractRepository)
	suite.mockProfiles = new(MockProfileRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.owner = &domain.Profile{ProfileID: uuid.NewString(), Email: "owner@example.com", FirstName: "Dana", LastName: "Lee"}
	suite.service = services.NewPublicDocumentService(
		suite.mockInvoices,
		suite.mockContracts,
		suite.mockProfiles,
		"rzp_test_key",
		services.WithNotifier(suite.mockNotifier),
	)
}

func (suite *PublicDocumentServiceTestSuite) invoice(status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:  uuid.NewString(),
		UserID:     suite.owner.ProfileID,
		Status:     status,
		Amount:     decimal.RequireFromString("150.25"),
		Currency:   domain.CurrencyINR,
		Client:     &domain.Client{Name: "Acme", Email: "billing@acme.example"},
		ShareToken: uuid.NewString(),
	}
}

func (suite *PublicDocumentServiceTestSuite) contract(status domain.ContractStatus) *domain.Contract {
	return &domain.Contract{
		ContractID: uuid.NewString(),
		UserID:     suite.owner.ProfileID,
		Status:     status,
		Title:      "Retainer",
		ShareToken: uuid.NewString(),
	}
}

func (suite *PublicDocumentServiceTestSuite) TestViewInvoice_SelectsView() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPending)
	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Twice()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(suite.owner, nil).Twice()

	public, err := suite.service.ViewInvoice(ctx, inv.ShareToken, domain.AnonymousSession)
	suite.Require().NoError(err)
	suite.Equal(domain.RecipientActionable, public.View.Kind)
	suite.Equal([]domain.DocumentAction{domain.ActionApprove, domain.ActionReject}, public.View.Actions)
	suite.Equal("Dana Lee", public.Sender.Name)

	public, err = suite.service.ViewInvoice(ctx, inv.ShareToken, domain.Session{UserID: suite.owner.ProfileID})
	suite.Require().NoError(err)
	suite.Equal(domain.OwnerPreview, public.View.Kind)
	suite.Empty(public.View.Actions)
}

func (suite *PublicDocumentServiceTestSuite) TestViewInvoice_UnknownToken() {
	ctx := context.Background()
	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ViewInvoice(ctx, "missing", domain.AnonymousSession)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PublicDocumentServiceTestSuite) TestApproveInvoice_Success() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPending)

	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.MatchedBy(func(i domain.Invoice) bool {
		return i.Status == domain.InvoiceStatusApproved && i.ApprovedDate != nil
	}), []domain.InvoiceStatus{domain.InvoiceStatusPending}).Return(nil).Once()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(suite.owner, nil).Once()
	suite.mockNotifier.On("QueueAndDispatch", ctx, mock.MatchedBy(func(r domain.NotificationRecord) bool {
		return r.EmailType == domain.EmailInvoiceApproved && r.RecipientEmail == "owner@example.com"
	})).Return(sentRecord(domain.NotificationRecord{}), nil).Once()

	approved, checkout, err := suite.service.ApproveInvoice(ctx, inv.ShareToken, domain.AnonymousSession)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusApproved, approved.Status)
	suite.Require().NotNil(checkout)
	suite.Equal("rzp_test_key", checkout.KeyID)
	suite.Equal(int64(15025), checkout.AmountMinor)
	suite.Equal(domain.CurrencyINR, checkout.Currency)
	suite.Equal("billing@acme.example", checkout.PrefillEmail)
	suite.Equal("Dana Lee", checkout.MerchantName)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PublicDocumentServiceTestSuite) TestApproveInvoice_OwnerForbidden() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPending)
	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Once()

	_, _, err := suite.service.ApproveInvoice(ctx, inv.ShareToken, domain.Session{UserID: suite.owner.ProfileID})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoices.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PublicDocumentServiceTestSuite) TestApproveInvoice_NotPending() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPaid)
	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Once()

	_, _, err := suite.service.ApproveInvoice(ctx, inv.ShareToken, domain.AnonymousSession)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *PublicDocumentServiceTestSuite) TestRejectInvoice_RequiresReason() {
	_, err := suite.service.RejectInvoice(context.Background(), "any", "   ", domain.AnonymousSession)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoices.AssertNotCalled(suite.T(), "FindInvoiceByShareToken", mock.Anything, mock.Anything)
}

func (suite *PublicDocumentServiceTestSuite) TestRejectInvoice_NotifiesOwnerOnce() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPending)

	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.MatchedBy(func(i domain.Invoice) bool {
		return i.Status == domain.InvoiceStatusRejected && *i.RejectionReason == "Rate too high" && i.RejectionDate != nil
	}), []domain.InvoiceStatus{domain.InvoiceStatusPending}).Return(nil).Once()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(suite.owner, nil).Once()
	suite.mockNotifier.On("QueueAndDispatch", ctx, mock.MatchedBy(func(r domain.NotificationRecord) bool {
		return r.EmailType == domain.EmailInvoiceRejected
	})).Return(sentRecord(domain.NotificationRecord{}), nil).Once()

	rejected, err := suite.service.RejectInvoice(ctx, inv.ShareToken, "  Rate too high ", domain.AnonymousSession)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusRejected, rejected.Status)
	suite.mockNotifier.AssertNumberOfCalls(suite.T(), "QueueAndDispatch", 1)
}

func (suite *PublicDocumentServiceTestSuite) TestRejectInvoice_LostRace() {
	ctx := context.Background()
	inv := suite.invoice(domain.InvoiceStatusPending)
	suite.mockInvoices.On("FindInvoiceByShareToken", ctx, inv.ShareToken).Return(inv, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice"), mock.Anything).Return(apperrors.ErrInvalidTransition).Once()

	_, err := suite.service.RejectInvoice(ctx, inv.ShareToken, "No", domain.AnonymousSession)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockNotifier.AssertNotCalled(suite.T(), "QueueAndDispatch", mock.Anything, mock.Anything)
}

func (suite *PublicDocumentServiceTestSuite) TestAcceptContract_StoresSignature() {
	ctx := context.Background()
	c := suite.contract(domain.ContractStatusSent)

	suite.mockContracts.On("FindContractByShareToken", ctx, c.ShareToken).Return(c, nil).Once()
	suite.mockContracts.On("UpdateContractStatus", ctx, mock.MatchedBy(func(k domain.Contract) bool {
		return k.Status == domain.ContractStatusAccepted && k.SignedDate != nil && *k.SignatureName == "Jo Client"
	}), []domain.ContractStatus{domain.ContractStatusSent}).Return(nil).Once()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(suite.owner, nil).Once()
	suite.mockNotifier.On("QueueAndDispatch", ctx, mock.MatchedBy(func(r domain.NotificationRecord) bool {
		return r.EmailType == domain.EmailContractAccepted && r.ContractID != nil && *r.ContractID == c.ContractID
	})).Return(sentRecord(domain.NotificationRecord{}), nil).Once()

	accepted, err := suite.service.AcceptContract(ctx, c.ShareToken, " Jo Client ", domain.AnonymousSession)

	suite.Require().NoError(err)
	suite.Equal(domain.ContractStatusAccepted, accepted.Status)
	suite.mockContracts.AssertExpectations(suite.T())
}

func (suite *PublicDocumentServiceTestSuite) TestAcceptContract_Draft() {
	ctx := context.Background()
	c := suite.contract(domain.ContractStatusDraft)
	suite.mockContracts.On("FindContractByShareToken", ctx, c.ShareToken).Return(c, nil).Once()

	_, err := suite.service.AcceptContract(ctx, c.ShareToken, "", domain.AnonymousSession)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *PublicDocumentServiceTestSuite) TestRejectContract_Success() {
	ctx := context.Background()
	c := suite.contract(domain.ContractStatusSent)

	suite.mockContracts.On("FindContractByShareToken", ctx, c.ShareToken).Return(c, nil).Once()
	suite.mockContracts.On("UpdateContractStatus", ctx, mock.AnythingOfType("domain.Contract"), []domain.ContractStatus{domain.ContractStatusSent}).Return(nil).Once()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockNotifier.On("QueueAndDispatch", ctx, mock.MatchedBy(func(r domain.NotificationRecord) bool {
		return r.EmailType == domain.EmailContractRejected && r.RecipientEmail == ""
	})).Return(sentRecord(domain.NotificationRecord{}), nil).Once()

	rejected, err := suite.service.RejectContract(ctx, c.ShareToken, "Scope unclear", domain.AnonymousSession)

	suite.Require().NoError(err)
	suite.Equal("Scope unclear", *rejected.RejectionReason)
}

func (suite *PublicDocumentServiceTestSuite) TestViewContract_Terminal() {
	ctx := context.Background()
	c := suite.contract(domain.ContractStatusAccepted)
	suite.mockContracts.On("FindContractByShareToken", ctx, c.ShareToken).Return(c, nil).Once()
	suite.mockProfiles.On("FindProfileByID", ctx, suite.owner.ProfileID).Return(suite.owner, nil).Once()

	public, err := suite.service.ViewContract(ctx, c.ShareToken, domain.Session{UserID: uuid.NewString()})

	suite.Require().NoError(err)
	suite.Equal(domain.RecipientTerminal, public.View.Kind)
}

func TestPublicDocumentService(t *testing.T) {
	suite.Run(t, new(PublicDocumentServiceTestSuite))
}

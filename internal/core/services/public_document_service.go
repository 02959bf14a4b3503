package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/utils"
)

const msgRejectionReasonRequired = "Please provide a reason for rejection."

type publicDocumentService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	contractRepo portsrepo.ContractRepositoryFacade
	profiles     portsrepo.ProfileReader
	hooks        lifecycleHooks
	checkoutKey  string
}

// NewPublicDocumentService creates the share-token viewer. checkoutKeyID is the
// public key handed to the payment widget after an approval.
func NewPublicDocumentService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	contractRepo portsrepo.ContractRepositoryFacade,
	profiles portsrepo.ProfileReader,
	checkoutKeyID string,
	options ...LifecycleOption,
) portssvc.PublicDocumentSvcFacade {
	return &publicDocumentService{
		invoiceRepo:  invoiceRepo,
		contractRepo: contractRepo,
		profiles:     profiles,
		hooks:        newLifecycleHooks(options),
		checkoutKey:  checkoutKeyID,
	}
}

var _ portssvc.PublicDocumentSvcFacade = (*publicDocumentService)(nil)

func (s *publicDocumentService) loadInvoice(ctx context.Context, token string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByShareToken(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve invoice share token")
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return inv, nil
}

func (s *publicDocumentService) loadContract(ctx context.Context, token string) (*domain.Contract, error) {
	c, err := s.contractRepo.FindContractByShareToken(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve contract share token")
		}
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	return c, nil
}

// owner loads the issuing profile. A missing profile leaves the sender block empty.
func (s *publicDocumentService) owner(ctx context.Context, ownerID string) *domain.Profile {
	p, err := s.profiles.FindProfileByID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load document owner", slog.String("owner_id", ownerID))
		}
		return nil
	}
	return p
}

func ownerEmail(p *domain.Profile) string {
	if p == nil {
		return ""
	}
	return p.Email
}

func (s *publicDocumentService) ViewInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicInvoice, error) {
	inv, err := s.loadInvoice(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	return &domain.PublicInvoice{
		Invoice: inv,
		Sender:  domain.SenderFromProfile(s.owner(ctx, inv.UserID)),
		View:    domain.SelectInvoiceView(inv, session),
	}, nil
}

func (s *publicDocumentService) ViewContract(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicContract, error) {
	c, err := s.loadContract(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	return &domain.PublicContract{
		Contract: c,
		Sender:   domain.SenderFromProfile(s.owner(ctx, c.UserID)),
		View:     domain.SelectContractView(c, session),
	}, nil
}

// actionableInvoice resolves the invoice and checks that session may respond to it.
func (s *publicDocumentService) actionableInvoice(ctx context.Context, token string, session domain.Session) (*domain.Invoice, error) {
	inv, err := s.loadInvoice(ctx, token)
	if err != nil {
		return nil, err
	}
	if domain.SelectInvoiceView(inv, session).Kind == domain.OwnerPreview {
		return nil, apperrors.NewForbiddenError("You cannot respond to your own invoice.")
	}
	if !inv.AwaitsResponse() {
		return nil, fmt.Errorf("invoice is %s: %w", inv.Status, apperrors.ErrInvalidTransition)
	}
	return inv, nil
}

func (s *publicDocumentService) actionableContract(ctx context.Context, token string, session domain.Session) (*domain.Contract, error) {
	c, err := s.loadContract(ctx, token)
	if err != nil {
		return nil, err
	}
	if domain.SelectContractView(c, session).Kind == domain.OwnerPreview {
		return nil, apperrors.NewForbiddenError("You cannot respond to your own contract.")
	}
	if !c.AwaitsResponse() {
		return nil, fmt.Errorf("contract is %s: %w", c.Status, apperrors.ErrInvalidTransition)
	}
	return c, nil
}

func (s *publicDocumentService) ApproveInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.Invoice, *domain.CheckoutDetails, error) {
	inv, err := s.actionableInvoice(ctx, shareToken, session)
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	inv.Status = domain.InvoiceStatusApproved
	inv.ApprovedDate = &now
	inv.Touch(now)
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *inv, []domain.InvoiceStatus{domain.InvoiceStatusPending}); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to approve invoice", slog.String("invoice_id", inv.InvoiceID))
		}
		return nil, nil, fmt.Errorf("failed to approve invoice: %w", err)
	}
	s.LogInfo(ctx, "Invoice approved", slog.String("invoice_id", inv.InvoiceID))

	owner := s.owner(ctx, inv.UserID)
	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   invoiceNotification(inv, domain.EmailInvoiceApproved, ownerEmail(owner)),
		event:          domain.NewDocumentEvent(domain.EventInvoiceApproved, inv.InvoiceID, inv.UserID, string(inv.Status), now),
		analyticsEvent: utils.EventInvoiceApproved,
		properties:     map[string]any{"invoice_id": inv.InvoiceID},
	})

	checkout := newCheckoutDetails(inv, owner, s.checkoutKey)
	return inv, &checkout, nil
}

func (s *publicDocumentService) RejectInvoice(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Invoice, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ValidationError(msgRejectionReasonRequired)
	}
	inv, err := s.actionableInvoice(ctx, shareToken, session)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	inv.Status = domain.InvoiceStatusRejected
	inv.RejectionReason = &reason
	inv.RejectionDate = &now
	inv.Touch(now)
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *inv, []domain.InvoiceStatus{domain.InvoiceStatusPending}); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to reject invoice", slog.String("invoice_id", inv.InvoiceID))
		}
		return nil, fmt.Errorf("failed to reject invoice: %w", err)
	}
	s.LogInfo(ctx, "Invoice rejected", slog.String("invoice_id", inv.InvoiceID))

	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   invoiceNotification(inv, domain.EmailInvoiceRejected, ownerEmail(s.owner(ctx, inv.UserID))),
		event:          domain.NewDocumentEvent(domain.EventInvoiceRejected, inv.InvoiceID, inv.UserID, string(inv.Status), now),
		analyticsEvent: utils.EventInvoiceRejected,
		properties:     map[string]any{"invoice_id": inv.InvoiceID},
	})
	return inv, nil
}

func (s *publicDocumentService) AcceptContract(ctx context.Context, shareToken string, signatureName string, session domain.Session) (*domain.Contract, error) {
	c, err := s.actionableContract(ctx, shareToken, session)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	c.Status = domain.ContractStatusAccepted
	c.SignedDate = &now
	if name := strings.TrimSpace(signatureName); name != "" {
		c.SignatureName = &name
	}
	c.Touch(now)
	if err := s.contractRepo.UpdateContractStatus(ctx, *c, []domain.ContractStatus{domain.ContractStatusSent}); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to accept contract", slog.String("contract_id", c.ContractID))
		}
		return nil, fmt.Errorf("failed to accept contract: %w", err)
	}
	s.LogInfo(ctx, "Contract accepted", slog.String("contract_id", c.ContractID))

	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   contractNotification(c, domain.EmailContractAccepted, ownerEmail(s.owner(ctx, c.UserID))),
		event:          domain.NewDocumentEvent(domain.EventContractAccepted, c.ContractID, c.UserID, string(c.Status), now),
		analyticsEvent: utils.EventContractAccepted,
		properties:     map[string]any{"contract_id": c.ContractID},
	})
	return c, nil
}

func (s *publicDocumentService) RejectContract(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Contract, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ValidationError(msgRejectionReasonRequired)
	}
	c, err := s.actionableContract(ctx, shareToken, session)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	c.Status = domain.ContractStatusRejected
	c.RejectionReason = &reason
	c.RejectionDate = &now
	c.Touch(now)
	if err := s.contractRepo.UpdateContractStatus(ctx, *c, []domain.ContractStatus{domain.ContractStatusSent}); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to reject contract", slog.String("contract_id", c.ContractID))
		}
		return nil, fmt.Errorf("failed to reject contract: %w", err)
	}
	s.LogInfo(ctx, "Contract rejected", slog.String("contract_id", c.ContractID))

	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   contractNotification(c, domain.EmailContractRejected, ownerEmail(s.owner(ctx, c.UserID))),
		event:          domain.NewDocumentEvent(domain.EventContractRejected, c.ContractID, c.UserID, string(c.Status), now),
		analyticsEvent: utils.EventContractRejected,
		properties:     map[string]any{"contract_id": c.ContractID},
	})
	return c, nil
}

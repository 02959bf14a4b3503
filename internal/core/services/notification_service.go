package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/emails"
	"github.com/google/uuid"
)

const (
	msgNoRecipient = "No recipient email address provided"
	msgNoBody      = "Email body is required"
	msgBadSender   = "Sender address must be the configured sender"
	msgLoadFailed  = "Failed to load notification record"
)

type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	invoiceReader    portsrepo.InvoiceReader
	contractReader   portsrepo.ContractReader
	sender           gateways.EmailSender
	renderer         *emails.Renderer
	publicURL        string
	defaultFrom      string
}

// NotificationOption configures the notification service.
type NotificationOption func(*notificationService)

// WithDocumentReaders lets the service check document ownership for the email log endpoints.
func WithDocumentReaders(invoices portsrepo.InvoiceReader, contracts portsrepo.ContractReader) NotificationOption {
	return func(s *notificationService) {
		s.invoiceReader = invoices
		s.contractReader = contracts
	}
}

// WithEmailDefaults sets the base URL used in links and the default sender address.
func WithEmailDefaults(publicURL, from string) NotificationOption {
	return func(s *notificationService) {
		s.publicURL = publicURL
		s.defaultFrom = from
	}
}

// WithRenderer replaces the embedded template renderer.
func WithRenderer(r *emails.Renderer) NotificationOption {
	return func(s *notificationService) {
		s.renderer = r
	}
}

// NewNotificationService creates the notification dispatcher.
func NewNotificationService(repo portsrepo.NotificationRepositoryFacade, sender gateways.EmailSender, options ...NotificationOption) portssvc.NotificationSvcFacade {
	svc := &notificationService{
		notificationRepo: repo,
		sender:           sender,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.renderer == nil {
		svc.renderer = emails.MustNewRenderer()
	}
	return svc
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Dispatch(ctx context.Context, req dto.DispatchRequest) (map[string]any, error) {
	from, err := s.resolveSender(req.From)
	if err != nil {
		return nil, err
	}
	if req.NotificationRecordID != "" {
		nc, err := s.notificationRepo.FindNotificationContext(ctx, req.NotificationRecordID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("notification record %s: %w", req.NotificationRecordID, errNotificationNotFound())
			}
			s.LogError(ctx, err, msgLoadFailed, slog.String("notification_id", req.NotificationRecordID))
			s.recordFailure(ctx, req.NotificationRecordID, msgLoadFailed)
			return nil, fmt.Errorf("failed to load notification record: %w", err)
		}
		return s.deliver(ctx, nc, from)
	}
	return s.dispatchInline(ctx, req, from)
}

// resolveSender resolves the From header of an outgoing email. A caller may restyle the
// display name, but the address must stay the configured sender's.
func (s *notificationService) resolveSender(from string) (string, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return s.defaultFrom, nil
	}
	requested, err := mail.ParseAddress(from)
	if err != nil {
		return "", apperrors.ValidationError(msgBadSender)
	}
	configured, err := mail.ParseAddress(s.defaultFrom)
	if err != nil || !strings.EqualFold(requested.Address, configured.Address) {
		return "", apperrors.ValidationError(msgBadSender)
	}
	return from, nil
}

func (s *notificationService) dispatchInline(ctx context.Context, req dto.DispatchRequest, from string) (map[string]any, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, apperrors.NewDeliveryError(msgNoRecipient)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, apperrors.ValidationError(msgNoBody)
	}
	msg := domain.EmailMessage{
		From:    from,
		To:      to,
		Subject: req.Subject,
		HTML:    req.HTML,
	}
	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.LogError(ctx, err, "Inline email delivery failed")
		return nil, apperrors.NewDeliveryError(err.Error())
	}
	return map[string]any{"id": id}, nil
}

// deliver renders and sends one record, then records the outcome on it.
func (s *notificationService) deliver(ctx context.Context, nc *domain.NotificationContext, from string) (map[string]any, error) {
	record := nc.Record
	logger := s.GetLogger(ctx).With(
		slog.String("notification_id", record.NotificationID),
		slog.String("email_type", string(record.EmailType)))

	to := resolveRecipient(nc)
	if to == "" {
		return nil, s.markFailed(ctx, record.NotificationID, msgNoRecipient)
	}

	subject := record.Subject
	if subject == "" {
		subject = domain.SubjectFor(record.EmailType, nc.Invoice, nc.Contract)
	}

	html, err := s.renderer.Render(record.EmailType, emails.NewData(nc, s.publicURL, s.Now()))
	if err != nil {
		logger.Error("Failed to render email", slog.String("error", err.Error()))
		return nil, s.markFailed(ctx, record.NotificationID, err.Error())
	}

	id, err := s.sender.Send(ctx, domain.EmailMessage{
		From:    from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		logger.Warn("Email delivery failed", slog.String("error", err.Error()))
		return nil, s.markFailed(ctx, record.NotificationID, err.Error())
	}

	if err := s.notificationRepo.UpdateNotificationStatus(ctx, record.NotificationID, domain.NotificationSent, s.Now(), nil); err != nil {
		// The email is out; only the log row is stale.
		logger.Error("Failed to mark notification sent", slog.String("error", err.Error()))
	}
	logger.Info("Notification sent", slog.String("provider_id", id))
	return map[string]any{"id": id}, nil
}

func (s *notificationService) markFailed(ctx context.Context, notificationID string, message string) error {
	s.recordFailure(ctx, notificationID, message)
	return apperrors.NewDeliveryError(message)
}

func (s *notificationService) recordFailure(ctx context.Context, notificationID string, message string) {
	if err := s.notificationRepo.UpdateNotificationStatus(ctx, notificationID, domain.NotificationFailed, s.Now(), &message); err != nil {
		s.LogError(ctx, err, "Failed to mark notification failed", slog.String("notification_id", notificationID))
	}
}

// resolveRecipient addresses owner-bound types to the owner's account email and
// everything else to the stored recipient, falling back to the client.
func resolveRecipient(nc *domain.NotificationContext) string {
	if nc.Record.EmailType.IsOwnerBound() {
		if nc.Owner != nil {
			return strings.TrimSpace(nc.Owner.Email)
		}
		return ""
	}
	if r := strings.TrimSpace(nc.Record.RecipientEmail); r != "" {
		return r
	}
	if nc.Client != nil {
		return strings.TrimSpace(nc.Client.Email)
	}
	return ""
}

func (s *notificationService) Queue(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	if (record.InvoiceID == nil) == (record.ContractID == nil) {
		return nil, fmt.Errorf("notification must reference exactly one document: %w", apperrors.ErrValidation)
	}
	if !record.EmailType.IsValid() {
		return nil, fmt.Errorf("unknown email type %q: %w", record.EmailType, apperrors.ErrValidation)
	}
	if record.EmailType.IsContract() != (record.ContractID != nil) {
		return nil, fmt.Errorf("email type %q does not match its document: %w", record.EmailType, apperrors.ErrValidation)
	}

	record.NotificationID = uuid.NewString()
	record.Status = domain.NotificationPending
	record.ErrorMessage = nil
	record.SentAt = nil
	record.CreatedAt = s.Now()

	if err := s.notificationRepo.SaveNotification(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to queue notification", slog.String("email_type", string(record.EmailType)))
		return nil, fmt.Errorf("failed to queue notification: %w", err)
	}
	return &record, nil
}

func (s *notificationService) QueueAndDispatch(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error) {
	queued, err := s.Queue(ctx, record)
	if err != nil {
		return nil, err
	}

	_, err = s.Dispatch(ctx, dto.DispatchRequest{NotificationRecordID: queued.NotificationID})
	now := s.Now()
	queued.SentAt = &now
	if err != nil {
		s.LogError(ctx, err, "Notification dispatch failed", slog.String("notification_id", queued.NotificationID))
		msg := apperrors.UserMessage(err, err.Error())
		queued.Status = domain.NotificationFailed
		queued.ErrorMessage = &msg
		return queued, nil
	}
	queued.Status = domain.NotificationSent
	return queued, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, ownerID string, documentID string) ([]domain.NotificationRecord, error) {
	if err := s.checkDocumentOwner(ctx, ownerID, documentID); err != nil {
		return nil, err
	}
	records, err := s.notificationRepo.ListNotificationsByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if records == nil {
		records = []domain.NotificationRecord{}
	}
	return records, nil
}

func (s *notificationService) checkDocumentOwner(ctx context.Context, ownerID string, documentID string) error {
	if s.invoiceReader != nil {
		_, err := s.invoiceReader.FindInvoiceByID(ctx, ownerID, documentID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check invoice ownership: %w", err)
		}
	}
	if s.contractReader != nil {
		_, err := s.contractReader.FindContractByID(ctx, ownerID, documentID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check contract ownership: %w", err)
		}
	}
	return fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
}

func (s *notificationService) Resend(ctx context.Context, ownerID string, notificationID string) (map[string]any, error) {
	nc, err := s.notificationRepo.FindNotificationContext(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification record: %w", err)
	}
	if !ownsNotification(nc, ownerID) {
		return nil, fmt.Errorf("notification %s: %w", notificationID, errNotificationNotFound())
	}
	s.LogInfo(ctx, "Resending notification", slog.String("notification_id", notificationID))
	return s.deliver(ctx, nc, s.defaultFrom)
}

func (s *notificationService) ResendAny(ctx context.Context, notificationID string) (map[string]any, error) {
	return s.Dispatch(ctx, dto.DispatchRequest{NotificationRecordID: notificationID})
}

func errNotificationNotFound() error {
	return apperrors.NewNotFoundError("Notification not found")
}

func ownsNotification(nc *domain.NotificationContext, ownerID string) bool {
	switch {
	case nc.Invoice != nil:
		return nc.Invoice.UserID == ownerID
	case nc.Contract != nil:
		return nc.Contract.UserID == ownerID
	}
	return false
}

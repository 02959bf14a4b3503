package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgClientEmailRequired = "Please enter the client's email address before sending."
	msgSaveInvoiceFailed   = "Failed to save invoice. Please try again."
	msgLineItemsRequired   = "Please add at least one line item."
	msgNegativeAmounts     = "Quantity, rate and tax rate cannot be negative."
	msgUnsupportedCurrency = "Unsupported currency."
	msgInvalidDueDate      = "Invalid due date."
	msgInvalidStatus       = "Invalid status filter."
	msgInvalidNextToken    = "Invalid nextToken."
)

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clients     portssvc.ClientResolverSvc
	hooks       lifecycleHooks
	publicURL   string
}

// NewInvoiceService creates the invoice issuer and list service.
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, clients portssvc.ClientResolverSvc, publicURL string, options ...LifecycleOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: repo,
		clients:     clients,
		hooks:       newLifecycleHooks(options),
		publicURL:   publicURL,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Invoice, *string, error) {
	filter, err := documentFilter(params, func(status string) bool {
		return domain.InvoiceStatus(status).IsValid()
	})
	if err != nil {
		return nil, nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if len(invoices) == 0 {
		return []domain.Invoice{}, nil, nil
	}
	last := invoices[len(invoices)-1]
	next := pagination.NextToken(len(invoices), filter.Limit, domain.DocumentCursor{CreatedAt: last.CreatedAt, ID: last.InvoiceID})
	return invoices, next, nil
}

// documentFilter validates list parameters shared by invoices and contracts.
func documentFilter(params dto.ListDocumentsParams, validStatus func(string) bool) (domain.DocumentFilter, error) {
	filter := domain.DocumentFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
	}
	filter.Limit = filter.NormalizedLimit()

	status := strings.ToLower(strings.TrimSpace(params.Status))
	if status != "" && status != "all" {
		if !validStatus(status) {
			return filter, apperrors.ValidationError(msgInvalidStatus)
		}
		filter.Status = status
	}

	if params.NextToken != "" {
		cursor, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return filter, apperrors.ValidationError(msgInvalidNextToken)
		}
		filter.After = cursor
	}
	return filter, nil
}

func (s *invoiceService) ShareLink(ctx context.Context, ownerID string, invoiceID string) (string, error) {
	inv, err := s.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return "", err
	}
	return utils.InvoiceShareURL(s.publicURL, inv.ShareToken), nil
}

// invoiceContent is a validated issuer form.
type invoiceContent struct {
	items    []domain.LineItem
	taxRate  decimal.Decimal
	currency domain.CurrencyCode
	dueDate  *time.Time
	notes    string
	send     bool
}

func parseInvoiceRequest(req dto.InvoiceRequest) (invoiceContent, error) {
	var content invoiceContent
	if len(req.Items) == 0 {
		return content, apperrors.ValidationError(msgLineItemsRequired)
	}
	if req.TaxRate.IsNegative() {
		return content, apperrors.ValidationError(msgNegativeAmounts)
	}
	content.items = make([]domain.LineItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity.IsNegative() || item.Rate.IsNegative() {
			return content, apperrors.ValidationError(msgNegativeAmounts)
		}
		content.items[i] = domain.LineItem{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}
	}

	content.currency = domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if content.currency == "" {
		content.currency = domain.DefaultCurrency
	}
	if !domain.IsSupportedCurrency(content.currency) {
		return content, apperrors.ValidationError(msgUnsupportedCurrency)
	}

	if req.DueDate != "" {
		due, err := time.Parse(dto.DateLayout, req.DueDate)
		if err != nil {
			return content, apperrors.ValidationError(msgInvalidDueDate)
		}
		content.dueDate = &due
	}

	content.taxRate = req.TaxRate
	content.notes = strings.TrimSpace(req.Notes)
	content.send = domain.InvoiceStatus(req.Status) == domain.InvoiceStatusPending
	return content, nil
}

func (c invoiceContent) applyTo(inv *domain.Invoice) {
	inv.Items = c.items
	inv.TaxRate = c.taxRate
	inv.Currency = c.currency
	inv.DueDate = c.dueDate
	inv.Notes = c.notes
	inv.Amount = domain.ComputeInvoiceTotals(c.items, c.taxRate).Total
	if c.send {
		inv.Status = domain.InvoiceStatusPending
	}
}

// resolveInvoiceClient finds the client of an issuer form. When the invoice is
// being sent the client email is checked before anything is written.
func (s *invoiceService) resolveInvoiceClient(ctx context.Context, ownerID string, req dto.InvoiceRequest, send bool) (*domain.Client, error) {
	hasID := req.ClientID != nil && *req.ClientID != ""
	if send && !hasID && strings.TrimSpace(req.ClientEmail) == "" {
		return nil, apperrors.ValidationError(msgClientEmailRequired)
	}
	client, err := s.clients.ResolveClient(ctx, ownerID, req.ClientID, domain.Client{
		Name:    req.ClientName,
		Email:   req.ClientEmail,
		Phone:   req.ClientPhone,
		Address: req.ClientAddress,
	})
	if err != nil {
		return nil, err
	}
	if send && (client == nil || strings.TrimSpace(client.Email) == "") {
		return nil, apperrors.ValidationError(msgClientEmailRequired)
	}
	return client, nil
}

func setInvoiceClient(inv *domain.Invoice, client *domain.Client) {
	inv.Client = client
	inv.ClientID = nil
	if client != nil {
		id := client.ClientID
		inv.ClientID = &id
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	content, err := parseInvoiceRequest(req)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveInvoiceClient(ctx, ownerID, req, content.send)
	if err != nil {
		return nil, err
	}

	inv := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		UserID:     ownerID,
		Status:     domain.InvoiceStatusDraft,
		ShareToken: domain.NewShareToken(),
	}
	content.applyTo(&inv)
	setInvoiceClient(&inv, client)
	inv.Touch(s.Now())

	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		s.LogError(ctx, err, "Failed to save invoice")
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveInvoiceFailed, err)
	}
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", inv.InvoiceID), slog.String("status", string(inv.Status)))

	if content.send {
		s.afterSend(ctx, &inv)
	}
	return &inv, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, ownerID string, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.IsEditable() {
		return nil, fmt.Errorf("invoice %s is %s: %w", invoiceID, inv.Status, apperrors.ErrInvalidTransition)
	}
	content, err := parseInvoiceRequest(req)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveInvoiceClient(ctx, ownerID, req, content.send)
	if err != nil {
		return nil, err
	}

	content.applyTo(inv)
	setInvoiceClient(inv, client)
	inv.Touch(s.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveInvoiceFailed, err)
	}

	if content.send {
		s.afterSend(ctx, inv)
	}
	return inv, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.CanSend() {
		return nil, fmt.Errorf("invoice %s is %s: %w", invoiceID, inv.Status, apperrors.ErrInvalidTransition)
	}
	if strings.TrimSpace(inv.RecipientEmail()) == "" {
		return nil, apperrors.ValidationError(msgClientEmailRequired)
	}

	inv.Status = domain.InvoiceStatusPending
	inv.Touch(s.Now())
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *inv, []domain.InvoiceStatus{domain.InvoiceStatusDraft}); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to send invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to send invoice: %w", err)
	}

	s.afterSend(ctx, inv)
	return inv, nil
}

func (s *invoiceService) afterSend(ctx context.Context, inv *domain.Invoice) {
	s.LogInfo(ctx, "Invoice sent", slog.String("invoice_id", inv.InvoiceID))
	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   invoiceNotification(inv, domain.EmailInvoiceSent, inv.RecipientEmail()),
		event:          domain.NewDocumentEvent(domain.EventInvoiceSent, inv.InvoiceID, inv.UserID, string(inv.Status), s.Now()),
		analyticsEvent: utils.EventInvoiceSent,
		properties: map[string]any{
			"invoice_id": inv.InvoiceID,
			"currency":   string(inv.Currency),
			"amount":     inv.Amount.String(),
		},
	})
}

func (s *invoiceService) DuplicateInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	dup := inv.Duplicate(uuid.NewString(), domain.NewShareToken(), s.Now())
	if err := s.invoiceRepo.SaveInvoice(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated invoice", slog.String("source_id", invoiceID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveInvoiceFailed, err)
	}
	s.LogInfo(ctx, "Invoice duplicated", slog.String("source_id", invoiceID), slog.String("invoice_id", dup.InvoiceID))
	return &dup, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, ownerID, invoiceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) MarkOverdue(ctx context.Context, ownerID string) (int64, error) {
	n, err := s.invoiceRepo.MarkOverdueInvoices(ctx, ownerID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue invoices")
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	if n > 0 {
		s.LogInfo(ctx, "Invoices marked overdue", slog.Int64("count", n))
	}
	return n, nil
}

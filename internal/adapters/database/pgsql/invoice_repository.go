package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/dustbill/dustbill_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
	SELECT i.id, i.user_id, i.client_id, i.status, i.amount, i.tax_rate, i.currency, i.due_date,
	       i.items, i.notes, i.share_token, i.approved_date, i.rejection_reason, i.rejection_date,
	       i.created_at, i.updated_at, ` + joinedClientColumns + `
	FROM invoices i
	LEFT JOIN clients c ON c.id = i.client_id
`

func toModelInvoice(d domain.Invoice) models.Invoice {
	items := make([]models.LineItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.LineItem{Description: item.Description, Quantity: item.Quantity, Rate: item.Rate}
	}
	return models.Invoice{
		InvoiceID:       d.InvoiceID,
		UserID:          d.UserID,
		ClientID:        d.ClientID,
		Status:          string(d.Status),
		Amount:          d.Amount,
		TaxRate:         d.TaxRate,
		Currency:        string(d.Currency),
		DueDate:         d.DueDate,
		Items:           items,
		Notes:           d.Notes,
		ShareToken:      d.ShareToken,
		ApprovedDate:    d.ApprovedDate,
		RejectionReason: d.RejectionReason,
		RejectionDate:   d.RejectionDate,
		Timestamps:      models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func toDomainInvoice(m models.Invoice) domain.Invoice {
	items := make([]domain.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = domain.LineItem{Description: item.Description, Quantity: item.Quantity, Rate: item.Rate}
	}
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		UserID:          m.UserID,
		ClientID:        m.ClientID,
		Status:          domain.InvoiceStatus(m.Status),
		Amount:          m.Amount,
		TaxRate:         m.TaxRate,
		Currency:        domain.CurrencyCode(m.Currency),
		DueDate:         m.DueDate,
		Items:           items,
		Notes:           m.Notes,
		ShareToken:      m.ShareToken,
		ApprovedDate:    m.ApprovedDate,
		RejectionReason: m.RejectionReason,
		RejectionDate:   m.RejectionDate,
		Timestamps:      domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	var client joinedClient
	targets := []any{
		&m.InvoiceID, &m.UserID, &m.ClientID, &m.Status, &m.Amount, &m.TaxRate, &m.Currency, &m.DueDate,
		&m.Items, &m.Notes, &m.ShareToken, &m.ApprovedDate, &m.RejectionReason, &m.RejectionDate,
		&m.CreatedAt, &m.UpdatedAt,
	}
	if err := row.Scan(append(targets, client.targets()...)...); err != nil {
		return nil, err
	}
	d := toDomainInvoice(m)
	d.Client = client.toDomain()
	return &d, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1 AND i.user_id = $2;`, invoiceID, ownerID))
	if err != nil {
		return nil, mapError(err, "failed to find invoice "+invoiceID)
	}
	return invoice, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByShareToken(ctx context.Context, shareToken string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, invoiceSelect+` WHERE i.share_token = $1;`, shareToken))
	if err != nil {
		return nil, mapError(err, "failed to find invoice by share token")
	}
	return invoice, nil
}

// findInvoice loads an invoice by id regardless of owner. Used for notification context.
func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1;`, invoiceID))
	if err != nil {
		return nil, mapError(err, "failed to find invoice "+invoiceID)
	}
	return invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Invoice, error) {
	afterCreated, afterID := cursorArgs(filter.After)
	query := invoiceSelect + `
		WHERE i.user_id = $1
		  AND ($2::text = '' OR i.status = $2)
		  AND ($3::text = '' OR c.name ILIKE $3 ESCAPE '\' OR i.id::text ILIKE $3 ESCAPE '\')
		  AND ($4::timestamptz IS NULL OR (i.created_at, i.id) < ($4, $5::uuid))
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT $6;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, filter.Status, containsPattern(filter.Search), afterCreated, afterID, filter.NormalizedLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) SumInvoicesByMonth(ctx context.Context, ownerID string) ([]domain.InvoiceTotal, error) {
	query := `
		SELECT status, date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, COUNT(*), COALESCE(SUM(amount), 0)
		FROM invoices
		WHERE user_id = $1
		GROUP BY status, month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum invoices: %w", err)
	}
	defer rows.Close()

	totals := []domain.InvoiceTotal{}
	for rows.Next() {
		var (
			status string
			month  time.Time
			t      domain.InvoiceTotal
		)
		if err := rows.Scan(&status, &month, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice total: %w", err)
		}
		t.Status = domain.InvoiceStatus(status)
		t.Month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice totals: %w", err)
	}
	return totals, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)
	query := `
		INSERT INTO invoices (id, user_id, client_id, status, amount, tax_rate, currency, due_date,
			items, notes, share_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.UserID,
		m.ClientID,
		m.Status,
		m.Amount,
		m.TaxRate,
		m.Currency,
		m.DueDate,
		m.Items,
		m.Notes,
		m.ShareToken,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError(err, "failed to save invoice")
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET client_id = $1, status = $2, amount = $3, tax_rate = $4, currency = $5, due_date = $6,
			items = $7, notes = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Status,
		m.Amount,
		m.TaxRate,
		m.Currency,
		m.DueDate,
		m.Items,
		m.Notes,
		m.UpdatedAt,
		m.InvoiceID,
		m.UserID,
	)
	if err != nil {
		return mapError(err, "failed to update invoice")
	}
	return requireRow(tag, "invoice")
}

func invoiceStatuses(statuses []domain.InvoiceStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, allowedFrom []domain.InvoiceStatus) error {
	query := `
		UPDATE invoices
		SET status = $1, approved_date = $2, rejection_reason = $3, rejection_date = $4, updated_at = $5
		WHERE id = $6 AND status = ANY($7);
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(invoice.Status),
		invoice.ApprovedDate,
		invoice.RejectionReason,
		invoice.RejectionDate,
		invoice.UpdatedAt,
		invoice.InvoiceID,
		invoiceStatuses(allowedFrom),
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s is no longer in %v: %w", invoice.InvoiceID, allowedFrom, apperrors.ErrInvalidTransition)
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2;`, invoiceID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return requireRow(tag, "invoice")
}

func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, ownerID string, asOf time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = 'overdue', updated_at = $2
		WHERE user_id = $1
		  AND status IN ('pending', 'approved')
		  AND due_date IS NOT NULL
		  AND due_date < $3::date;
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, asOf, asOf.Format(time.DateOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}

package pgsql

import (
	"context"
	"fmt"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/dustbill/dustbill_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const insertPaymentQuery = `
	INSERT INTO payments (id, invoice_id, external_payment_id, order_id, amount, currency, status,
		payment_method, error_description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:         d.PaymentID,
		InvoiceID:         d.InvoiceID,
		ExternalPaymentID: nullString(d.ExternalPaymentID),
		OrderID:           nullString(d.OrderID),
		Amount:            d.Amount,
		Currency:          string(d.Currency),
		Status:            string(d.Status),
		PaymentMethod:     d.PaymentMethod,
		ErrorDescription:  nullString(d.ErrorDescription),
		CreatedAt:         d.CreatedAt,
	}
}

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:         m.PaymentID,
		InvoiceID:         m.InvoiceID,
		ExternalPaymentID: m.ExternalPaymentID.String,
		OrderID:           m.OrderID.String,
		Amount:            m.Amount,
		Currency:          domain.CurrencyCode(m.Currency),
		Status:            domain.PaymentStatus(m.Status),
		PaymentMethod:     m.PaymentMethod,
		ErrorDescription:  m.ErrorDescription.String,
		CreatedAt:         m.CreatedAt,
	}
}

func paymentArgs(m models.Payment) []any {
	return []any{
		m.PaymentID,
		m.InvoiceID,
		m.ExternalPaymentID,
		m.OrderID,
		m.Amount,
		m.Currency,
		m.Status,
		m.PaymentMethod,
		m.ErrorDescription,
		m.CreatedAt,
	}
}

func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT id, invoice_id, external_payment_id, order_id, amount, currency, status,
		       payment_method, error_description, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.InvoiceID,
			&m.ExternalPaymentID,
			&m.OrderID,
			&m.Amount,
			&m.Currency,
			&m.Status,
			&m.PaymentMethod,
			&m.ErrorDescription,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	_, err := r.Pool.Exec(ctx, insertPaymentQuery, paymentArgs(toModelPayment(payment))...)
	return mapError(err, "failed to save payment")
}

// SaveSuccessfulPayment flips the invoice to paid and appends the payment row atomically.
func (r *PgxPaymentRepository) SaveSuccessfulPayment(ctx context.Context, payment domain.Payment, allowedFrom []domain.InvoiceStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := markInvoicePaid(ctx, tx, payment, allowedFrom); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertPaymentQuery, paymentArgs(toModelPayment(payment))...); err != nil {
		return mapError(err, "failed to save payment")
	}
	return r.Commit(ctx, tx)
}

func markInvoicePaid(ctx context.Context, tx pgx.Tx, payment domain.Payment, allowedFrom []domain.InvoiceStatus) error {
	query := `
		UPDATE invoices
		SET status = 'paid', updated_at = $2
		WHERE id = $1 AND status = ANY($3);
	`
	tag, err := tx.Exec(ctx, query, payment.InvoiceID, payment.CreatedAt, invoiceStatuses(allowedFrom))
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s is not payable: %w", payment.InvoiceID, apperrors.ErrInvalidTransition)
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/dustbill/dustbill_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxNotificationRepository persists the email_logs table.
type PgxNotificationRepository struct {
	BaseRepository
	invoices  *PgxInvoiceRepository
	contracts *PgxContractRepository
	profiles  *PgxProfileRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	base := BaseRepository{Pool: pool}
	return &PgxNotificationRepository{
		BaseRepository: base,
		invoices:       &PgxInvoiceRepository{BaseRepository: base},
		contracts:      &PgxContractRepository{BaseRepository: base},
		profiles:       &PgxProfileRepository{BaseRepository: base},
	}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const emailLogColumns = `id, invoice_id, contract_id, recipient_email, email_type, subject, status,
	error_message, sent_at, created_at`

func toModelEmailLog(d domain.NotificationRecord) models.EmailLog {
	return models.EmailLog{
		ID:             d.NotificationID,
		InvoiceID:      d.InvoiceID,
		ContractID:     d.ContractID,
		RecipientEmail: d.RecipientEmail,
		EmailType:      string(d.EmailType),
		Subject:        d.Subject,
		Status:         string(d.Status),
		ErrorMessage:   d.ErrorMessage,
		SentAt:         d.SentAt,
		CreatedAt:      d.CreatedAt,
	}
}

func toDomainNotification(m models.EmailLog) domain.NotificationRecord {
	return domain.NotificationRecord{
		NotificationID: m.ID,
		InvoiceID:      m.InvoiceID,
		ContractID:     m.ContractID,
		RecipientEmail: m.RecipientEmail,
		EmailType:      domain.EmailType(m.EmailType),
		Subject:        m.Subject,
		Status:         domain.NotificationStatus(m.Status),
		ErrorMessage:   m.ErrorMessage,
		SentAt:         m.SentAt,
		CreatedAt:      m.CreatedAt,
	}
}

func scanEmailLog(row pgx.Row) (*domain.NotificationRecord, error) {
	var m models.EmailLog
	err := row.Scan(
		&m.ID,
		&m.InvoiceID,
		&m.ContractID,
		&m.RecipientEmail,
		&m.EmailType,
		&m.Subject,
		&m.Status,
		&m.ErrorMessage,
		&m.SentAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainNotification(m)
	return &d, nil
}

// FindNotificationContext loads the record, then its document (with client) and the document owner.
func (r *PgxNotificationRepository) FindNotificationContext(ctx context.Context, notificationID string) (*domain.NotificationContext, error) {
	record, err := scanEmailLog(r.Pool.QueryRow(ctx, `SELECT `+emailLogColumns+` FROM email_logs WHERE id = $1;`, notificationID))
	if err != nil {
		return nil, mapError(err, "failed to find notification "+notificationID)
	}

	nc := &domain.NotificationContext{Record: *record}
	var ownerID string
	switch {
	case record.InvoiceID != nil:
		nc.Invoice, err = r.invoices.findInvoice(ctx, *record.InvoiceID)
		if err != nil {
			return nil, err
		}
		nc.Client = nc.Invoice.Client
		ownerID = nc.Invoice.UserID
	case record.ContractID != nil:
		nc.Contract, err = r.contracts.findContract(ctx, *record.ContractID)
		if err != nil {
			return nil, err
		}
		nc.Client = nc.Contract.Client
		ownerID = nc.Contract.UserID
	default:
		return nil, fmt.Errorf("notification %s references no document", notificationID)
	}

	// A vanished owner leaves Owner nil; owner-bound emails then fail for want of a recipient.
	nc.Owner, err = r.profiles.FindProfileByID(ctx, ownerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return nc, nil
}

func (r *PgxNotificationRepository) ListNotificationsByDocument(ctx context.Context, documentID string) ([]domain.NotificationRecord, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_logs
		WHERE invoice_id = $1 OR contract_id = $1
		ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query email logs: %w", err)
	}
	defer rows.Close()

	records := []domain.NotificationRecord{}
	for rows.Next() {
		record, err := scanEmailLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email log row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email log rows: %w", err)
	}
	return records, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, record domain.NotificationRecord) error {
	m := toModelEmailLog(record)
	query := `
		INSERT INTO email_logs (id, invoice_id, contract_id, recipient_email, email_type, subject, status,
			error_message, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.InvoiceID,
		m.ContractID,
		m.RecipientEmail,
		m.EmailType,
		m.Subject,
		m.Status,
		m.ErrorMessage,
		m.SentAt,
		m.CreatedAt,
	)
	return mapError(err, "failed to save email log")
}

// UpdateNotificationStatus records the outcome of a delivery attempt. sent_at is stamped for
// failures too, marking when the attempt ended.
func (r *PgxNotificationRepository) UpdateNotificationStatus(ctx context.Context, notificationID string, status domain.NotificationStatus, sentAt time.Time, errorMessage *string) error {
	query := `
		UPDATE email_logs
		SET status = $1, sent_at = $2, error_message = $3
		WHERE id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), sentAt, errorMessage, notificationID)
	if err != nil {
		return fmt.Errorf("failed to update email log %s: %w", notificationID, err)
	}
	return requireRow(tag, "email log")
}

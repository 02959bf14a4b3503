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

type PgxContractRepository struct {
	BaseRepository
}

func newPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

const contractSelect = `
	SELECT k.id, k.user_id, k.client_id, k.status, k.title, k.description, k.content, k.terms,
	       k.share_token, k.signed_date, k.signature_name, k.rejection_reason, k.rejection_date,
	       k.created_at, k.updated_at, ` + joinedClientColumns + `
	FROM contracts k
	LEFT JOIN clients c ON c.id = k.client_id
`

func toModelContract(d domain.Contract) models.Contract {
	return models.Contract{
		ContractID:      d.ContractID,
		UserID:          d.UserID,
		ClientID:        d.ClientID,
		Status:          string(d.Status),
		Title:           d.Title,
		Description:     d.Description,
		Content:         d.Content,
		Terms:           d.Terms,
		ShareToken:      d.ShareToken,
		SignedDate:      d.SignedDate,
		SignatureName:   d.SignatureName,
		RejectionReason: d.RejectionReason,
		RejectionDate:   d.RejectionDate,
		Timestamps:      models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func toDomainContract(m models.Contract) domain.Contract {
	return domain.Contract{
		ContractID:      m.ContractID,
		UserID:          m.UserID,
		ClientID:        m.ClientID,
		Status:          domain.ContractStatus(m.Status),
		Title:           m.Title,
		Description:     m.Description,
		Content:         m.Content,
		Terms:           m.Terms,
		ShareToken:      m.ShareToken,
		SignedDate:      m.SignedDate,
		SignatureName:   m.SignatureName,
		RejectionReason: m.RejectionReason,
		RejectionDate:   m.RejectionDate,
		Timestamps:      domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var m models.Contract
	var client joinedClient
	targets := []any{
		&m.ContractID, &m.UserID, &m.ClientID, &m.Status, &m.Title, &m.Description, &m.Content, &m.Terms,
		&m.ShareToken, &m.SignedDate, &m.SignatureName, &m.RejectionReason, &m.RejectionDate,
		&m.CreatedAt, &m.UpdatedAt,
	}
	if err := row.Scan(append(targets, client.targets()...)...); err != nil {
		return nil, err
	}
	d := toDomainContract(m)
	d.Client = client.toDomain()
	return &d, nil
}

func (r *PgxContractRepository) FindContractByID(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	contract, err := scanContract(r.Pool.QueryRow(ctx, contractSelect+` WHERE k.id = $1 AND k.user_id = $2;`, contractID, ownerID))
	if err != nil {
		return nil, mapError(err, "failed to find contract "+contractID)
	}
	return contract, nil
}

func (r *PgxContractRepository) FindContractByShareToken(ctx context.Context, shareToken string) (*domain.Contract, error) {
	contract, err := scanContract(r.Pool.QueryRow(ctx, contractSelect+` WHERE k.share_token = $1;`, shareToken))
	if err != nil {
		return nil, mapError(err, "failed to find contract by share token")
	}
	return contract, nil
}

func (r *PgxContractRepository) findContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := scanContract(r.Pool.QueryRow(ctx, contractSelect+` WHERE k.id = $1;`, contractID))
	if err != nil {
		return nil, mapError(err, "failed to find contract "+contractID)
	}
	return contract, nil
}

func (r *PgxContractRepository) ListContracts(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Contract, error) {
	afterCreated, afterID := cursorArgs(filter.After)
	query := contractSelect + `
		WHERE k.user_id = $1
		  AND ($2::text = '' OR k.status = $2)
		  AND ($3::text = '' OR k.title ILIKE $3 ESCAPE '\' OR c.name ILIKE $3 ESCAPE '\')
		  AND ($4::timestamptz IS NULL OR (k.created_at, k.id) < ($4, $5::uuid))
		ORDER BY k.created_at DESC, k.id DESC
		LIMIT $6;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, filter.Status, containsPattern(filter.Search), afterCreated, afterID, filter.NormalizedLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		contracts = append(contracts, *contract)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", err)
	}
	return contracts, nil
}

func (r *PgxContractRepository) CountContractsByStatus(ctx context.Context, ownerID string) (map[domain.ContractStatus]int, error) {
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM contracts WHERE user_id = $1 GROUP BY status;`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	defer rows.Close()

	counts := map[domain.ContractStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan contract count: %w", err)
		}
		counts[domain.ContractStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract counts: %w", err)
	}
	return counts, nil
}

func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	m := toModelContract(contract)
	query := `
		INSERT INTO contracts (id, user_id, client_id, status, title, description, content, terms,
			share_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.UserID,
		m.ClientID,
		m.Status,
		m.Title,
		m.Description,
		m.Content,
		m.Terms,
		m.ShareToken,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError(err, "failed to save contract")
}

func (r *PgxContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	m := toModelContract(contract)
	query := `
		UPDATE contracts
		SET client_id = $1, status = $2, title = $3, description = $4, content = $5, terms = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Status,
		m.Title,
		m.Description,
		m.Content,
		m.Terms,
		m.UpdatedAt,
		m.ContractID,
		m.UserID,
	)
	if err != nil {
		return mapError(err, "failed to update contract")
	}
	return requireRow(tag, "contract")
}

func (r *PgxContractRepository) UpdateContractStatus(ctx context.Context, contract domain.Contract, allowedFrom []domain.ContractStatus) error {
	allowed := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		allowed[i] = string(s)
	}
	query := `
		UPDATE contracts
		SET status = $1, signed_date = $2, signature_name = $3, rejection_reason = $4, rejection_date = $5, updated_at = $6
		WHERE id = $7 AND status = ANY($8);
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(contract.Status),
		contract.SignedDate,
		contract.SignatureName,
		contract.RejectionReason,
		contract.RejectionDate,
		contract.UpdatedAt,
		contract.ContractID,
		allowed,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contract %s is no longer in %v: %w", contract.ContractID, allowedFrom, apperrors.ErrInvalidTransition)
	}
	return nil
}

func (r *PgxContractRepository) DeleteContract(ctx context.Context, ownerID string, contractID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1 AND user_id = $2;`, contractID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return requireRow(tag, "contract")
}

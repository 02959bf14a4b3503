package pgsql

import (
	"context"
	"fmt"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/dustbill/dustbill_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `id, user_id, name, email, phone, address, created_at, updated_at`

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:   d.ClientID,
		UserID:     d.UserID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Timestamps: models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:   m.ClientID,
		UserID:     m.UserID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		Timestamps: domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var m models.Client
	if err := row.Scan(&m.ClientID, &m.UserID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	d := toDomainClient(m)
	return &d, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND user_id = $2;`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, ownerID))
	if err != nil {
		return nil, mapError(err, "failed to find client "+clientID)
	}
	return client, nil
}

func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1 AND email = $2
		ORDER BY created_at
		LIMIT 1;
	`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, ownerID, email))
	if err != nil {
		return nil, mapError(err, "failed to find client by email")
	}
	return client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, ownerID string, search string) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1
		  AND ($2::text = '' OR name ILIKE $2 ESCAPE '\' OR email ILIKE $2 ESCAPE '\')
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, containsPattern(search))
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) CountClients(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE user_id = $1;`, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		INSERT INTO clients (id, user_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.ClientID, m.UserID, m.Name, m.Email, m.Phone, m.Address, m.CreatedAt, m.UpdatedAt)
	return mapError(err, "failed to save client")
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Email, m.Phone, m.Address, m.UpdatedAt, m.ClientID, m.UserID)
	if err != nil {
		return mapError(err, "failed to update client")
	}
	return requireRow(tag, "client")
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2;`, clientID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireRow(tag, "client")
}

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
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/google/uuid"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(repo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: repo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClient(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, ownerID, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get client", slog.String("client_id", clientID))
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, ownerID string, params dto.ListClientsParams) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, ownerID, strings.TrimSpace(params.Search))
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func (s *clientService) CreateClient(ctx context.Context, ownerID string, req dto.CreateClientRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationError("Client name is required.")
	}
	client := domain.Client{
		ClientID: uuid.NewString(),
		UserID:   ownerID,
		Name:     name,
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
	}
	client.Touch(s.Now())

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.ValidationError("Client name is required.")
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	client.Touch(s.Now())

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	if err := s.clientRepo.DeleteClient(ctx, ownerID, clientID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}

// ResolveClient picks the client a document is addressed to. An explicit id wins.
// Otherwise a supplied email is matched exactly against the owner's clients and the
// match takes the submitted contact fields. Without a match a new client is created.
// Empty emails never match, so clients without an email are never merged.
func (s *clientService) ResolveClient(ctx context.Context, ownerID string, clientID *string, contact domain.Client) (*domain.Client, error) {
	if clientID != nil && *clientID != "" {
		return s.GetClient(ctx, ownerID, *clientID)
	}

	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Address = strings.TrimSpace(contact.Address)

	if contact.Email == "" && contact.Name == "" {
		return nil, nil
	}

	now := s.Now()
	if contact.Email != "" {
		existing, err := s.clientRepo.FindClientByEmail(ctx, ownerID, contact.Email)
		switch {
		case err == nil:
			if contact.Name != "" {
				existing.Name = contact.Name
			}
			existing.Phone = contact.Phone
			existing.Address = contact.Address
			existing.Touch(now)
			if err := s.clientRepo.UpdateClient(ctx, *existing); err != nil {
				s.LogError(ctx, err, "Failed to update matched client", slog.String("client_id", existing.ClientID))
				return nil, fmt.Errorf("failed to update client: %w", err)
			}
			return existing, nil
		case !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Failed to look up client by email")
			return nil, fmt.Errorf("failed to look up client: %w", err)
		}
	}

	client := domain.Client{
		ClientID: uuid.NewString(),
		UserID:   ownerID,
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
		Address:  contact.Address,
	}
	if client.Name == "" {
		client.Name = client.Email
	}
	client.Touch(now)
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to create client for document")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "Client created from document form", slog.String("client_id", client.ClientID))
	return &client, nil
}

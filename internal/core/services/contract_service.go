package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	msgContractTitleRequired   = "Contract title is required."
	msgContractClientRequired  = "Please select a client."
	msgContractContentRequired = "Contract content is required."
	msgSaveContractFailed      = "Failed to save contract. Please try again."
)

type contractService struct {
	BaseService
	contractRepo portsrepo.ContractRepositoryFacade
	clients      portssvc.ClientReaderSvc
	hooks        lifecycleHooks
	publicURL    string
}

// NewContractService creates the contract issuer and list service.
func NewContractService(repo portsrepo.ContractRepositoryFacade, clients portssvc.ClientReaderSvc, publicURL string, options ...LifecycleOption) portssvc.ContractSvcFacade {
	return &contractService{
		contractRepo: repo,
		clients:      clients,
		hooks:        newLifecycleHooks(options),
		publicURL:    publicURL,
	}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

func (s *contractService) GetContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	c, err := s.contractRepo.FindContractByID(ctx, ownerID, contractID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get contract", slog.String("contract_id", contractID))
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (s *contractService) ListContracts(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Contract, *string, error) {
	filter, err := documentFilter(params, func(status string) bool {
		return domain.ContractStatus(status).IsValid()
	})
	if err != nil {
		return nil, nil, err
	}

	contracts, err := s.contractRepo.ListContracts(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contracts")
		return nil, nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	if len(contracts) == 0 {
		return []domain.Contract{}, nil, nil
	}
	last := contracts[len(contracts)-1]
	next := pagination.NextToken(len(contracts), filter.Limit, domain.DocumentCursor{CreatedAt: last.CreatedAt, ID: last.ContractID})
	return contracts, next, nil
}

func (s *contractService) ShareLink(ctx context.Context, ownerID string, contractID string) (string, error) {
	c, err := s.GetContract(ctx, ownerID, contractID)
	if err != nil {
		return "", err
	}
	return utils.ContractShareURL(s.publicURL, c.ShareToken), nil
}

// contractContent is a validated issuer form.
type contractContent struct {
	title       string
	description string
	content     string
	terms       string
	send        bool
}

func parseContractRequest(req dto.ContractRequest) (contractContent, error) {
	c := contractContent{
		title:       strings.TrimSpace(req.Title),
		description: strings.TrimSpace(req.Description),
		content:     strings.TrimSpace(req.Content),
		terms:       strings.TrimSpace(req.Terms),
		send:        domain.ContractStatus(req.Status) == domain.ContractStatusSent,
	}
	switch {
	case c.title == "":
		return c, apperrors.ValidationError(msgContractTitleRequired)
	case strings.TrimSpace(req.ClientID) == "":
		return c, apperrors.ValidationError(msgContractClientRequired)
	case c.content == "":
		return c, apperrors.ValidationError(msgContractContentRequired)
	}
	if c.terms == "" {
		c.terms = domain.DefaultContractTerms
	}
	return c, nil
}

func (c contractContent) applyTo(contract *domain.Contract, client *domain.Client) {
	contract.Title = c.title
	contract.Description = c.description
	contract.Content = c.content
	contract.Terms = c.terms
	id := client.ClientID
	contract.ClientID = &id
	contract.Client = client
	if c.send {
		contract.Status = domain.ContractStatusSent
	}
}

func (s *contractService) resolveContractClient(ctx context.Context, ownerID string, clientID string, send bool) (*domain.Client, error) {
	client, err := s.clients.GetClient(ctx, ownerID, strings.TrimSpace(clientID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ValidationError(msgContractClientRequired)
		}
		return nil, err
	}
	if send && strings.TrimSpace(client.Email) == "" {
		return nil, apperrors.ValidationError(msgClientEmailRequired)
	}
	return client, nil
}

func (s *contractService) CreateContract(ctx context.Context, ownerID string, req dto.ContractRequest) (*domain.Contract, error) {
	content, err := parseContractRequest(req)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveContractClient(ctx, ownerID, req.ClientID, content.send)
	if err != nil {
		return nil, err
	}

	contract := domain.Contract{
		ContractID: uuid.NewString(),
		UserID:     ownerID,
		Status:     domain.ContractStatusDraft,
		ShareToken: domain.NewShareToken(),
	}
	content.applyTo(&contract, client)
	contract.Touch(s.Now())

	if err := s.contractRepo.SaveContract(ctx, contract); err != nil {
		s.LogError(ctx, err, "Failed to save contract")
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveContractFailed, err)
	}
	s.LogInfo(ctx, "Contract created", slog.String("contract_id", contract.ContractID), slog.String("status", string(contract.Status)))

	if content.send {
		s.afterSend(ctx, &contract)
	}
	return &contract, nil
}

func (s *contractService) UpdateContract(ctx context.Context, ownerID string, contractID string, req dto.ContractRequest) (*domain.Contract, error) {
	contract, err := s.GetContract(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.IsEditable() {
		return nil, fmt.Errorf("contract %s is %s: %w", contractID, contract.Status, apperrors.ErrInvalidTransition)
	}
	content, err := parseContractRequest(req)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveContractClient(ctx, ownerID, req.ClientID, content.send)
	if err != nil {
		return nil, err
	}

	content.applyTo(contract, client)
	contract.Touch(s.Now())

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to update contract: %w", err)
		}
		s.LogError(ctx, err, "Failed to update contract", slog.String("contract_id", contractID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveContractFailed, err)
	}

	if content.send {
		s.afterSend(ctx, contract)
	}
	return contract, nil
}

func (s *contractService) SendContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	contract, err := s.GetContract(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.CanSend() {
		return nil, fmt.Errorf("contract %s is %s: %w", contractID, contract.Status, apperrors.ErrInvalidTransition)
	}
	if strings.TrimSpace(contract.RecipientEmail()) == "" {
		return nil, apperrors.ValidationError(msgClientEmailRequired)
	}

	contract.Status = domain.ContractStatusSent
	contract.Touch(s.Now())
	allowed := []domain.ContractStatus{domain.ContractStatusDraft, domain.ContractStatusRejected}
	if err := s.contractRepo.UpdateContractStatus(ctx, *contract, allowed); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to send contract", slog.String("contract_id", contractID))
		}
		return nil, fmt.Errorf("failed to send contract: %w", err)
	}

	s.afterSend(ctx, contract)
	return contract, nil
}

func (s *contractService) afterSend(ctx context.Context, c *domain.Contract) {
	s.LogInfo(ctx, "Contract sent", slog.String("contract_id", c.ContractID))
	s.afterTransition(ctx, s.hooks, statusChange{
		notification:   contractNotification(c, domain.EmailContractSent, c.RecipientEmail()),
		event:          domain.NewDocumentEvent(domain.EventContractSent, c.ContractID, c.UserID, string(c.Status), s.Now()),
		analyticsEvent: utils.EventContractSent,
		properties:     map[string]any{"contract_id": c.ContractID},
	})
}

func (s *contractService) DuplicateContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error) {
	c, err := s.GetContract(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	dup := c.Duplicate(uuid.NewString(), domain.NewShareToken(), s.Now())
	if err := s.contractRepo.SaveContract(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated contract", slog.String("source_id", contractID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, msgSaveContractFailed, err)
	}
	s.LogInfo(ctx, "Contract duplicated", slog.String("source_id", contractID), slog.String("contract_id", dup.ContractID))
	return &dup, nil
}

func (s *contractService) DeleteContract(ctx context.Context, ownerID string, contractID string) error {
	if err := s.contractRepo.DeleteContract(ctx, ownerID, contractID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete contract", slog.String("contract_id", contractID))
		}
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	s.LogInfo(ctx, "Contract deleted", slog.String("contract_id", contractID))
	return nil
}

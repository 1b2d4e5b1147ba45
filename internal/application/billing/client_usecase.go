package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// ClientUseCase implements client CRUD. Every operation is scoped to the
// requesting user; a foreign user's client id behaves as nonexistent.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase builds the client use case.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create persists a client. (user, email) must be unique.
func (uc *ClientUseCase) Create(userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	existing, err := uc.clientRepo.GetByUserAndEmail(userID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: client with this email already exists", domain.ErrDuplicate)
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Email:       email,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		Phone:       in.Phone,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get returns a client with its invoice aggregates.
func (uc *ClientUseCase) Get(userID, clientID string) (*dto.ClientDetailResponse, error) {
	client, err := uc.clientRepo.GetByIDAndUser(clientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	totals, err := uc.clientRepo.Totals(client.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ClientDetailResponse{
		ClientResponse:   *toClientResponse(client),
		TotalInvoiced:    totals.TotalInvoiced,
		TotalPaid:        totals.TotalPaid,
		TotalOutstanding: totals.TotalOutstanding,
	}, nil
}

// List returns the user's clients, newest first.
func (uc *ClientUseCase) List(userID string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.Defaults()
	clients, err := uc.clientRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update applies a partial update. Changing the email re-checks uniqueness.
func (uc *ClientUseCase) Update(userID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByIDAndUser(clientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		client.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrInvalidInput)
		}
		if email != client.Email {
			existing, err := uc.clientRepo.GetByUserAndEmail(userID, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: client with this email already exists", domain.ErrDuplicate)
			}
			client.Email = email
		}
	}
	if in.CompanyName != nil {
		client.CompanyName = *in.CompanyName
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete removes a client and, through the schema's cascade, its invoices.
func (uc *ClientUseCase) Delete(userID, clientID string) error {
	client, err := uc.clientRepo.GetByIDAndUser(clientID, userID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(client.ID)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		CompanyName: c.CompanyName,
		Address:     c.Address,
		Phone:       c.Phone,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

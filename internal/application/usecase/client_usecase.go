package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD de clientes. Los contadores de pedidos son de solo lectura.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create alta de cliente con contadores en cero.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		ContactName:  in.ContactName,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		TaxID:        in.TaxID,
		IsActive:     true,
		TotalRevenue: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// GetByID obtiene un cliente; nil si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil || client == nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// Update actualización parcial de datos de contacto.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil || client == nil {
		return nil, err
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		client.Type = *in.Type
	}
	if in.ContactName != nil {
		client.ContactName = *in.ContactName
	}
	if in.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.TaxID != nil {
		client.TaxID = *in.TaxID
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// List lista clientes con filtros y paginación.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ClientFilterRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ClientFilter{Type: in.Type, Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un cliente. Con pedidos asociados devuelve ErrConflict.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ImportRow alta usada por el importador; un cliente con el mismo nombre y NIT se omite.
func (uc *ClientUseCase) ImportRow(ctx context.Context, in dto.CreateClientRequest) (bool, error) {
	existing, _, err := uc.repo.List(ctx, repository.ClientFilter{Search: strings.TrimSpace(in.Name), Limit: 50})
	if err != nil {
		return false, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, strings.TrimSpace(in.Name)) && c.TaxID == in.TaxID {
			return false, nil
		}
	}
	_, err = uc.Create(ctx, in)
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

// ToClientResponse convierte la entidad en DTO.
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		ContactName:   c.ContactName,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		TaxID:         c.TaxID,
		IsActive:      c.IsActive,
		TotalOrders:   c.TotalOrders,
		TotalRevenue:  c.TotalRevenue,
		LastOrderDate: c.LastOrderDate,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

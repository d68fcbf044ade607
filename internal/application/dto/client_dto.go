package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Type        string `json:"type" validate:"required,oneof=retail wholesale distributor restaurant individual"`
	ContactName string `json:"contactName" validate:"omitempty,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	City        string `json:"city" validate:"omitempty,max=100"`
	TaxID       string `json:"taxId" validate:"omitempty,max=40"`
}

// UpdateClientRequest actualización parcial; los contadores no son editables.
type UpdateClientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type" validate:"omitempty,oneof=retail wholesale distributor restaurant individual"`
	ContactName *string `json:"contactName" validate:"omitempty,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	TaxID       *string `json:"taxId" validate:"omitempty,max=40"`
	IsActive    *bool   `json:"isActive"`
}

// ClientFilterRequest filtros de listado.
type ClientFilterRequest struct {
	PageRequest
	Type   string `query:"type"`
	Search string `query:"search"`
}

// ClientResponse salida de un cliente con sus contadores.
type ClientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	ContactName   string          `json:"contactName,omitempty"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	TaxID         string          `json:"taxId,omitempty"`
	IsActive      bool            `json:"isActive"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	LastOrderDate *time.Time      `json:"lastOrderDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

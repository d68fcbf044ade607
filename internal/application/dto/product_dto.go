package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Category     string          `json:"category" validate:"required,oneof=milk cheese yogurt butter cream other"`
	Unit         string          `json:"unit" validate:"required,oneof=liter kg unit pack"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CurrentStock int             `json:"currentStock" validate:"min=0"`
	MinStock     int             `json:"minStock" validate:"min=0"`
}

// UpdateProductRequest actualización parcial. El stock se ajusta con AdjustStockRequest.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Category    *string          `json:"category" validate:"omitempty,oneof=milk cheese yogurt butter cream other"`
	Unit        *string          `json:"unit" validate:"omitempty,oneof=liter kg unit pack"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	MinStock    *int             `json:"minStock" validate:"omitempty,min=0"`
	IsActive    *bool            `json:"isActive"`
}

// AdjustStockRequest ajuste manual de inventario (delta positivo o negativo).
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required,ne=0"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// ProductFilterRequest filtros de listado (query string).
type ProductFilterRequest struct {
	PageRequest
	Category string `query:"category"`
	Search   string `query:"search"`
	LowStock bool   `query:"lowStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
	LowStock     bool            `json:"lowStock"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

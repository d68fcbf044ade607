package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest entrada para crear un lote. StartDate opcional (2006-01-02).
type CreateBatchRequest struct {
	ProductType string `json:"productType" validate:"required,max=100"`
	ProductID   string `json:"productId" validate:"omitempty"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Unit        string `json:"unit" validate:"required,oneof=liter kg unit pack"`
	StartDate   string `json:"startDate"`
	Notes       string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateBatchRequest actualización parcial (solo mientras no esté finalizado).
type UpdateBatchRequest struct {
	ProductType *string `json:"productType" validate:"omitempty,max=100"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gt=0"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateBatchStatusRequest cambio de estado del lote.
type UpdateBatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed failed cancelled"`
}

// QualityCheckRequest mediciones del control de calidad.
type QualityCheckRequest struct {
	Temperature decimal.Decimal `json:"temperature"`
	PH          decimal.Decimal `json:"ph"`
	Bacteria    int64           `json:"bacteria" validate:"min=0"`
}

// BatchFilterRequest filtros de listado.
type BatchFilterRequest struct {
	PageRequest
	Status string `query:"status"`
}

// QualityChecksResponse resultado del control.
type QualityChecksResponse struct {
	Temperature decimal.Decimal `json:"temperature"`
	PH          decimal.Decimal `json:"ph"`
	Bacteria    int64           `json:"bacteria"`
	Passed      bool            `json:"passed"`
	CheckedAt   time.Time       `json:"checkedAt"`
	CheckedBy   string          `json:"checkedBy,omitempty"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID            string                 `json:"id"`
	BatchNumber   string                 `json:"batchNumber"`
	ProductType   string                 `json:"productType"`
	ProductID     string                 `json:"productId,omitempty"`
	Quantity      int                    `json:"quantity"`
	Unit          string                 `json:"unit"`
	Status        string                 `json:"status"`
	StartDate     *time.Time             `json:"startDate,omitempty"`
	EndDate       *time.Time             `json:"endDate,omitempty"`
	QualityChecks *QualityChecksResponse `json:"qualityChecks,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedBy     string                 `json:"createdBy,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

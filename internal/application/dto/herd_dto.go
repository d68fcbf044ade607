package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCowRequest alta de una vaca. BirthDate opcional (2006-01-02).
type CreateCowRequest struct {
	TagNumber       string `json:"tagNumber" validate:"required,max=50"`
	Name            string `json:"name" validate:"omitempty,max=100"`
	Breed           string `json:"breed" validate:"omitempty,max=100"`
	BirthDate       string `json:"birthDate"`
	Status          string `json:"status" validate:"omitempty,oneof=active dry sick sold deceased"`
	LactationNumber int    `json:"lactationNumber" validate:"min=0"`
	Notes           string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateCowRequest actualización parcial.
type UpdateCowRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Breed           *string `json:"breed" validate:"omitempty,max=100"`
	Status          *string `json:"status" validate:"omitempty,oneof=active dry sick sold deceased"`
	LactationNumber *int    `json:"lactationNumber" validate:"omitempty,min=0"`
	Notes           *string `json:"notes" validate:"omitempty,max=1000"`
}

// CowFilterRequest filtros de listado del hato.
type CowFilterRequest struct {
	PageRequest
	Status string `query:"status"`
	Search string `query:"search"`
}

// CowResponse salida de una vaca.
type CowResponse struct {
	ID              string     `json:"id"`
	TagNumber       string     `json:"tagNumber"`
	Name            string     `json:"name,omitempty"`
	Breed           string     `json:"breed,omitempty"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	Status          string     `json:"status"`
	LactationNumber int        `json:"lactationNumber"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CowListResponse listado paginado.
type CowListResponse struct {
	Items []CowResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// HerdRecordFilterRequest filtro común de registros.
type HerdRecordFilterRequest struct {
	PageRequest
	CowID string `query:"cowId"`
	From  string `query:"from"`
	To    string `query:"to"`
}

// CreateMilkRecordRequest registro de ordeño.
type CreateMilkRecordRequest struct {
	CowID      string          `json:"cowId" validate:"required"`
	Date       string          `json:"date" validate:"required"`
	Shift      string          `json:"shift" validate:"required,oneof=morning evening"`
	Liters     decimal.Decimal `json:"liters"`
	FatPct     decimal.Decimal `json:"fatPct"`
	ProteinPct decimal.Decimal `json:"proteinPct"`
}

// MilkRecordResponse ordeño registrado.
type MilkRecordResponse struct {
	ID         string          `json:"id"`
	CowID      string          `json:"cowId"`
	Date       time.Time       `json:"date"`
	Shift      string          `json:"shift"`
	Liters     decimal.Decimal `json:"liters"`
	FatPct     decimal.Decimal `json:"fatPct"`
	ProteinPct decimal.Decimal `json:"proteinPct"`
	RecordedBy string          `json:"recordedBy,omitempty"`
}

// MilkSummaryDTO producción total de un día.
type MilkSummaryDTO struct {
	Date        string          `json:"date"`
	TotalLiters decimal.Decimal `json:"totalLiters"`
	Records     int             `json:"records"`
	Cows        int             `json:"cows"`
}

// CreateHealthRecordRequest evento sanitario.
type CreateHealthRecordRequest struct {
	CowID         string          `json:"cowId" validate:"required"`
	Date          string          `json:"date" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=vaccination treatment checkup injury"`
	Diagnosis     string          `json:"diagnosis" validate:"omitempty,max=500"`
	Treatment     string          `json:"treatment" validate:"omitempty,max=500"`
	Veterinarian  string          `json:"veterinarian" validate:"omitempty,max=200"`
	Cost          decimal.Decimal `json:"cost"`
	NextCheckDate string          `json:"nextCheckDate"`
}

// UpdateHealthRecordRequest actualización parcial.
type UpdateHealthRecordRequest struct {
	Diagnosis     *string          `json:"diagnosis" validate:"omitempty,max=500"`
	Treatment     *string          `json:"treatment" validate:"omitempty,max=500"`
	Veterinarian  *string          `json:"veterinarian" validate:"omitempty,max=200"`
	Cost          *decimal.Decimal `json:"cost"`
	NextCheckDate *string          `json:"nextCheckDate"`
}

// HealthRecordResponse evento sanitario registrado.
type HealthRecordResponse struct {
	ID            string          `json:"id"`
	CowID         string          `json:"cowId"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Diagnosis     string          `json:"diagnosis,omitempty"`
	Treatment     string          `json:"treatment,omitempty"`
	Veterinarian  string          `json:"veterinarian,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	NextCheckDate *time.Time      `json:"nextCheckDate,omitempty"`
}

// CreateFeedRecordRequest suministro de alimento. CowID vacío = todo el hato.
type CreateFeedRecordRequest struct {
	CowID      string          `json:"cowId"`
	Date       string          `json:"date" validate:"required"`
	FeedType   string          `json:"feedType" validate:"required,max=100"`
	QuantityKg decimal.Decimal `json:"quantityKg"`
	Cost       decimal.Decimal `json:"cost"`
}

// FeedRecordResponse suministro registrado.
type FeedRecordResponse struct {
	ID         string          `json:"id"`
	CowID      string          `json:"cowId,omitempty"`
	Date       time.Time       `json:"date"`
	FeedType   string          `json:"feedType"`
	QuantityKg decimal.Decimal `json:"quantityKg"`
	Cost       decimal.Decimal `json:"cost"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del lote de producción.
const (
	BatchStatusPending    = "pending"
	BatchStatusInProgress = "in-progress"
	BatchStatusCompleted  = "completed"
	BatchStatusFailed     = "failed"
	BatchStatusCancelled  = "cancelled"
)

// Batch lote de producción (ej. 500 L de yogur natural).
// Si ProductID está definido, al completarse suma Quantity al stock del producto.
type Batch struct {
	ID            string
	BatchNumber   string
	ProductType   string
	ProductID     string
	Quantity      int
	Unit          string
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	QualityChecks *QualityChecks
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QualityChecks resultado del control de calidad del lote.
type QualityChecks struct {
	Temperature decimal.Decimal `json:"temperature"` // °C
	PH          decimal.Decimal `json:"ph"`
	Bacteria    int64           `json:"bacteria"` // UFC/ml
	Passed      bool            `json:"passed"`
	CheckedAt   time.Time       `json:"checkedAt"`
	CheckedBy   string          `json:"checkedBy"`
}

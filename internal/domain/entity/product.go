package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto lácteo.
const (
	CategoryMilk   = "milk"
	CategoryCheese = "cheese"
	CategoryYogurt = "yogurt"
	CategoryButter = "butter"
	CategoryCream  = "cream"
	CategoryOther  = "other"
)

// Product representa un producto terminado con stock propio.
// CurrentStock solo se modifica con actualizaciones condicionales (nunca queda negativo).
type Product struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	Category     string
	Unit         string // liter, kg, unit, pack
	UnitPrice    decimal.Decimal
	CurrentStock int
	MinStock     int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

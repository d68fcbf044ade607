package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	ClientTypeRetail      = "retail"
	ClientTypeWholesale   = "wholesale"
	ClientTypeDistributor = "distributor"
	ClientTypeRestaurant  = "restaurant"
	ClientTypeIndividual  = "individual"
)

// Client representa un cliente (tienda, distribuidor, restaurante...).
// TotalOrders, TotalRevenue y LastOrderDate son contadores desnormalizados que mantiene la creación de pedidos.
type Client struct {
	ID            string
	Name          string
	Type          string
	ContactName   string
	Email         string
	Phone         string
	Address       string
	City          string
	TaxID         string
	IsActive      bool
	TotalOrders   int
	TotalRevenue  decimal.Decimal
	LastOrderDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

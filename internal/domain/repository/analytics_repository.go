package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounts totales crudos del tablero. Los pedidos cancelados no suman ingresos.
type DashboardCounts struct {
	TotalOrders        int
	PendingOrders      int
	TodayOrders        int
	MonthRevenue       decimal.Decimal
	TotalProducts      int
	LowStockProducts   int
	TotalClients       int
	ActiveBatches      int
	OutstandingBalance decimal.Decimal
}

// DailySalesResult ventas agregadas por día.
type DailySalesResult struct {
	Day     time.Time
	Orders  int
	Revenue decimal.Decimal
}

// ProductSalesResult unidades e ingresos por producto.
type ProductSalesResult struct {
	ProductID   string
	SKU         string
	ProductName string
	Units       int
	Revenue     decimal.Decimal
}

// ClientSalesResult pedidos e ingresos por cliente.
type ClientSalesResult struct {
	ClientID   string
	ClientName string
	Orders     int
	Revenue    decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para tablero y reportes.
type AnalyticsRepository interface {
	// GetDashboardCounts calcula los totales; dayStart y monthStart delimitan "hoy" y "este mes".
	GetDashboardCounts(ctx context.Context, dayStart, monthStart time.Time) (DashboardCounts, error)
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSalesResult, error)
	GetTopClients(ctx context.Context, from, to time.Time, limit int) ([]ClientSalesResult, error)
}

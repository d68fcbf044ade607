package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse indicadores del tablero principal.
type DashboardStatsResponse struct {
	TotalOrders        int             `json:"totalOrders"`
	PendingOrders      int             `json:"pendingOrders"`
	TodayOrders        int             `json:"todayOrders"`
	MonthRevenue       decimal.Decimal `json:"monthRevenue"`
	TotalProducts      int             `json:"totalProducts"`
	LowStockProducts   int             `json:"lowStockProducts"`
	TotalClients       int             `json:"totalClients"`
	ActiveBatches      int             `json:"activeBatches"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Period             string          `json:"period"` // ej. "Marzo 2026"
	Herd               *HerdStatsDTO   `json:"herd,omitempty"`
}

// HerdStatsDTO resumen del hato (solo si el módulo está habilitado).
type HerdStatsDTO struct {
	Cows        int             `json:"cows"`
	TodayLiters decimal.Decimal `json:"todayLiters"`
}

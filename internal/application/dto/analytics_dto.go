package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRangeRequest rango de fechas (2006-01-02) y límite para reportes.
type ReportRangeRequest struct {
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// DailySalesDTO ventas de un día.
type DailySalesDTO struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReportResponse ventas diarias y totales del período.
type SalesReportResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Days         []DailySalesDTO `json:"days"`
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	ProductID   string          `json:"productId"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"productName"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopClientDTO cliente con más compras.
type TopClientDTO struct {
	ClientID   string          `json:"clientId"`
	ClientName string          `json:"clientName"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

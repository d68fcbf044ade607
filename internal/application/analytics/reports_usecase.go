package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

const (
	defaultReportDays = 30
	defaultTopLimit   = 10
)

// SalesReportExporter genera el archivo descargable del reporte de ventas.
type SalesReportExporter interface {
	ExportSales(report *dto.SalesReportResponse, products []dto.TopProductDTO, clients []dto.TopClientDTO) ([]byte, error)
}

// ReportsUseCase reportes de ventas por rango de fechas. Excluyen pedidos cancelados.
type ReportsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	exporter      SalesReportExporter
	now           func() time.Time
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(analyticsRepo repository.AnalyticsRepository, exporter SalesReportExporter) *ReportsUseCase {
	return &ReportsUseCase{analyticsRepo: analyticsRepo, exporter: exporter, now: time.Now}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *ReportsUseCase) SetClock(now func() time.Time) { uc.now = now }

// resolveRange convierte from/to (inclusivos, 2006-01-02) en [from, to+1d).
// Sin fechas: últimos 30 días hasta hoy.
func (uc *ReportsUseCase) resolveRange(in dto.ReportRangeRequest) (from, to time.Time, err error) {
	now := uc.now().UTC()
	to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d, ok, err := dto.ParseDate(in.To); err != nil {
		return time.Time{}, time.Time{}, err
	} else if ok {
		to = d
	}
	from = to.AddDate(0, 0, -(defaultReportDays - 1))
	if d, ok, err := dto.ParseDate(in.From); err != nil {
		return time.Time{}, time.Time{}, err
	} else if ok {
		from = d
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return from, to.AddDate(0, 0, 1), nil
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultTopLimit
	}
	return n
}

// Sales ventas diarias del rango con totales.
func (uc *ReportsUseCase) Sales(ctx context.Context, in dto.ReportRangeRequest) (*dto.SalesReportResponse, error) {
	from, to, err := uc.resolveRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.GetSalesByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}
	out := &dto.SalesReportResponse{
		From:         from,
		To:           to.AddDate(0, 0, -1),
		Days:         make([]dto.DailySalesDTO, 0, len(rows)),
		TotalRevenue: decimal.Zero,
	}
	for _, r := range rows {
		out.Days = append(out.Days, dto.DailySalesDTO{
			Date:    r.Day.Format("2006-01-02"),
			Orders:  r.Orders,
			Revenue: r.Revenue.Round(2),
		})
		out.TotalOrders += r.Orders
		out.TotalRevenue = out.TotalRevenue.Add(r.Revenue)
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)
	return out, nil
}

// TopProducts productos con más ingresos en el rango.
func (uc *ReportsUseCase) TopProducts(ctx context.Context, in dto.ReportRangeRequest) ([]dto.TopProductDTO, error) {
	from, to, err := uc.resolveRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.GetTopProducts(ctx, from, to, limitOrDefault(in.Limit))
	if err != nil {
		return nil, fmt.Errorf("reporte de productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			Units:       r.Units,
			Revenue:     r.Revenue.Round(2),
		})
	}
	return out, nil
}

// TopClients clientes con más ingresos en el rango.
func (uc *ReportsUseCase) TopClients(ctx context.Context, in dto.ReportRangeRequest) ([]dto.TopClientDTO, error) {
	from, to, err := uc.resolveRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.GetTopClients(ctx, from, to, limitOrDefault(in.Limit))
	if err != nil {
		return nil, fmt.Errorf("reporte de clientes: %w", err)
	}
	out := make([]dto.TopClientDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopClientDTO{
			ClientID:   r.ClientID,
			ClientName: r.ClientName,
			Orders:     r.Orders,
			Revenue:    r.Revenue.Round(2),
		})
	}
	return out, nil
}

// ExportSales arma los tres reportes del rango y los entrega al exportador.
func (uc *ReportsUseCase) ExportSales(ctx context.Context, in dto.ReportRangeRequest) ([]byte, string, error) {
	sales, err := uc.Sales(ctx, in)
	if err != nil {
		return nil, "", err
	}
	products, err := uc.TopProducts(ctx, in)
	if err != nil {
		return nil, "", err
	}
	clients, err := uc.TopClients(ctx, in)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportSales(sales, products, clients)
	if err != nil {
		return nil, "", fmt.Errorf("exportar ventas: %w", err)
	}
	name := fmt.Sprintf("ventas_%s_%s.xlsx", sales.From.Format("20060102"), sales.To.Format("20060102"))
	return data, name, nil
}

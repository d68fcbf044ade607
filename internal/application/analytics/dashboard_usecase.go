// Package analytics contiene los casos de uso del tablero y los reportes de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// HerdStats fuente opcional de indicadores del hato.
type HerdStats interface {
	Stats(ctx context.Context, dayStart time.Time) (cows int, liters decimal.Decimal, err error)
}

// DashboardUseCase genera los indicadores del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y, si está habilitado, el almacén del hato.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	herd          HerdStats
	log           *logger.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. herd puede ser nil (módulo deshabilitado).
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, herd HerdStats, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, herd: herd, log: log.Component("dashboard"), now: time.Now}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *DashboardUseCase) SetClock(now func() time.Time) { uc.now = now }

// GetStats construye el DashboardStatsResponse.
//
// Dos consultas en paralelo:
//  1. GetDashboardCounts(hoy, mes)  → totales del negocio
//  2. herd.Stats(hoy)               → tamaño del hato y litros del día
//
// Un fallo del almacén del hato no tumba el tablero: se registra y se omite el bloque.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type herdResult struct {
		cows   int
		liters decimal.Decimal
		err    error
	}
	herdCh := make(chan herdResult, 1)
	if uc.herd != nil {
		go func() {
			cows, liters, err := uc.herd.Stats(ctx, todayStart)
			herdCh <- herdResult{cows, liters, err}
		}()
	}

	counts, err := uc.analyticsRepo.GetDashboardCounts(ctx, todayStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", err)
	}

	out := &dto.DashboardStatsResponse{
		TotalOrders:        counts.TotalOrders,
		PendingOrders:      counts.PendingOrders,
		TodayOrders:        counts.TodayOrders,
		MonthRevenue:       counts.MonthRevenue.Round(2),
		TotalProducts:      counts.TotalProducts,
		LowStockProducts:   counts.LowStockProducts,
		TotalClients:       counts.TotalClients,
		ActiveBatches:      counts.ActiveBatches,
		OutstandingBalance: counts.OutstandingBalance.Round(2),
		Period:             monthLabel(now),
	}

	if uc.herd != nil {
		h := <-herdCh
		if h.err != nil {
			uc.log.Warn().Err(h.err).Msg("indicadores del hato no disponibles")
		} else {
			out.Herd = &dto.HerdStatsDTO{Cows: h.cows, TodayLiters: h.liters.Round(2)}
		}
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

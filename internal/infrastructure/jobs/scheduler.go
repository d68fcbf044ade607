// Package jobs tareas periódicas: vencimiento de facturas y alerta de stock bajo.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// OverdueMarker marca como vencidas las facturas con saldo y fecha de vencimiento pasada.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// LowStockLister productos con stock en o bajo el mínimo.
type LowStockLister interface {
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

// jobTimeout tope de ejecución de cada tarea.
const jobTimeout = 2 * time.Minute

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler envoltorio de cron con las tareas registradas.
type Scheduler struct {
	sched    *cron.Cron
	overdue  OverdueMarker
	lowStock LowStockLister
	log      *logger.Logger
}

// New registra las tareas; una expresión inválida devuelve error sin arrancar nada.
func New(cfg config.JobsConfig, overdue OverdueMarker, lowStock LowStockLister, log *logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("JOBS_LOCATION %q: %w", cfg.Location, err)
	}
	s := &Scheduler{
		sched:    cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		overdue:  overdue,
		lowStock: lowStock,
		log:      log.Component("jobs"),
	}
	if _, err := s.sched.AddFunc(cfg.OverdueSpec, func() { s.RunOverdue(context.Background()) }); err != nil {
		return nil, fmt.Errorf("JOBS_OVERDUE_SPEC %q: %w", cfg.OverdueSpec, err)
	}
	if _, err := s.sched.AddFunc(cfg.LowStockSpec, func() { s.RunLowStock(context.Background()) }); err != nil {
		return nil, fmt.Errorf("JOBS_LOW_STOCK_SPEC %q: %w", cfg.LowStockSpec, err)
	}
	return s, nil
}

// Start arranca el planificador en segundo plano.
func (s *Scheduler) Start() {
	s.sched.Start()
	s.log.Info().Int("jobs", len(s.sched.Entries())).Msg("planificador iniciado")
}

// Stop detiene el planificador y espera las tareas en curso (o a que ctx expire).
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("tareas en curso no terminaron antes del apagado")
	}
}

// RunOverdue marca facturas vencidas.
func (s *Scheduler) RunOverdue(ctx context.Context) {
	defer s.recover("overdue-invoices")
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.overdue.MarkOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", "overdue-invoices").Msg("fallo marcando facturas vencidas")
		return
	}
	if n > 0 {
		s.log.Info().Int64("invoices", n).Str("job", "overdue-invoices").Msg("facturas marcadas como vencidas")
	}
}

// RunLowStock registra un warning por producto en o bajo el mínimo.
func (s *Scheduler) RunLowStock(ctx context.Context) {
	defer s.recover("low-stock")
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	products, err := s.lowStock.LowStock(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", "low-stock").Msg("fallo consultando stock bajo")
		return
	}
	for _, p := range products {
		s.log.Warn().
			Str("product_id", p.ID).
			Str("sku", p.SKU).
			Int("current_stock", p.CurrentStock).
			Int("min_stock", p.MinStock).
			Msg("producto con stock bajo")
	}
}

func (s *Scheduler) recover(job string) {
	if r := recover(); r != nil {
		s.log.Error().Str("job", job).Interface("panic", r).Msg("tarea programada en pánico")
	}
}

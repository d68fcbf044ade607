package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// BatchFilter criterios de listado de lotes.
type BatchFilter struct {
	Status string
	Limit  int
	Offset int
}

// BatchRepository define el puerto de persistencia para Batch (DIP).
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// Update persiste campos editables y quality checks (no el estado).
	Update(ctx context.Context, batch *entity.Batch) error
	// UpdateStatus cambia el estado solo si el actual es from.
	UpdateStatus(ctx context.Context, id, from, to string, startDate, endDate *time.Time, at time.Time) (bool, error)
	List(ctx context.Context, f BatchFilter) ([]*entity.Batch, int, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// OrderFilter criterios de listado de pedidos. From/To filtran por fecha de creación.
type OrderFilter struct {
	Status   string
	ClientID string
	DriverID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// OrderRepository define el puerto de persistencia para Order, sus líneas y su historial.
type OrderRepository interface {
	// Create inserta cabecera, líneas y eventos iniciales.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID carga el pedido con líneas y eventos (orden cronológico).
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, int, error)
	// UpdateStatus cambia el estado solo si el actual es from. false si otro proceso lo cambió antes.
	UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
	AppendEvent(ctx context.Context, ev *entity.TrackingEvent) error
	// UpdateDetails persiste datos de entrega, descuento y totales.
	UpdateDetails(ctx context.Context, order *entity.Order) error
	AssignDriver(ctx context.Context, id, driverID, driverName string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	Type   string
	Search string
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// Update no toca los contadores de pedidos.
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, int, error)
	// RecordOrder incrementa total_orders en 1, suma total a total_revenue y fija last_order_date.
	RecordOrder(ctx context.Context, id string, total decimal.Decimal, at time.Time) error
	Delete(ctx context.Context, id string) error
}

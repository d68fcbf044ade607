package repository

import (
	"context"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Category string
	Search   string // nombre o SKU
	LowStock bool
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update no toca CurrentStock: el stock solo cambia con AdjustStock.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// AdjustStock suma delta al stock en una sola sentencia condicional
	// (current_stock + delta >= 0). applied=false si el producto no existe o el stock no alcanza.
	AdjustStock(ctx context.Context, id string, delta int) (applied bool, err error)
	Delete(ctx context.Context, id string) error
}

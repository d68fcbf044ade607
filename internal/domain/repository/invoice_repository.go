package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// InvoiceFilter criterios de listado de facturas.
type InvoiceFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// InvoiceRepository define el puerto de persistencia para Invoice, líneas y abonos.
type InvoiceRepository interface {
	// Create inserta cabecera y líneas. ErrDuplicate si el pedido ya tiene factura.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, int, error)
	// Update persiste notas, vencimiento, estado, amount_paid y balance.
	Update(ctx context.Context, invoice *entity.Invoice) error
	AddPayment(ctx context.Context, payment *entity.Payment) error
	// MarkOverdue pasa a overdue las facturas con saldo y vencimiento anterior a now.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

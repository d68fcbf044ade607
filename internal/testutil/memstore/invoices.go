package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/billing"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invoices {
		if existing.OrderID == inv.OrderID || existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.OrderID == orderID {
			inv = cloneInvoice(inv)
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Invoice
	for _, inv := range r.s.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		inv = cloneInvoice(inv)
		list = append(list, &inv)
	}
	sortNewestFirst(list, func(i *entity.Invoice) int64 { return i.CreatedAt.UnixNano() }, func(i *entity.Invoice) string { return i.ID })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *InvoiceRepo) Update(ctx context.Context, in *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Notes = in.Notes
	inv.DueDate = in.DueDate
	inv.Status = in.Status
	inv.AmountPaid = in.AmountPaid
	inv.Balance = in.Balance
	inv.UpdatedAt = in.UpdatedAt
	r.s.invoices[in.ID] = inv
	return nil
}

func (r *InvoiceRepo) AddPayment(ctx context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[p.InvoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	inv = cloneInvoice(inv)
	inv.Payments = append(inv.Payments, *p)
	r.s.invoices[p.InvoiceID] = inv
	return nil
}

func (r *InvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, inv := range r.s.invoices {
		if billing.IsOverdue(&inv, now) {
			inv.Status = entity.InvoiceStatusOverdue
			inv.UpdatedAt = now
			r.s.invoices[id] = inv
			n++
		}
	}
	return n, nil
}

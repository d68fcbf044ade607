package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.ClientID != "" && o.ClientID != f.ClientID {
			continue
		}
		if f.DriverID != "" && o.DriverID != f.DriverID {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !o.CreatedAt.Before(*f.To) {
			continue
		}
		o = cloneOrder(o)
		list = append(list, &o)
	}
	sortNewestFirst(list, func(o *entity.Order) int64 { return o.CreatedAt.UnixNano() }, func(o *entity.Order) string { return o.ID })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = at
	r.s.orders[id] = o
	return true, nil
}

func (r *OrderRepo) AppendEvent(ctx context.Context, ev *entity.TrackingEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAppendEvent != nil {
		return r.s.FailAppendEvent
	}
	o, ok := r.s.orders[ev.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	o = cloneOrder(o)
	o.Events = append(o.Events, *ev)
	r.s.orders[ev.OrderID] = o
	return nil
}

func (r *OrderRepo) UpdateDetails(ctx context.Context, in *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	o.DeliveryAddress = in.DeliveryAddress
	o.DeliveryDate = in.DeliveryDate
	o.DeliveryTime = in.DeliveryTime
	o.SpecialInstructions = in.SpecialInstructions
	o.Discount = in.Discount
	o.Subtotal = in.Subtotal
	o.Tax = in.Tax
	o.Total = in.Total
	o.UpdatedAt = in.UpdatedAt
	r.s.orders[in.ID] = o
	return nil
}

func (r *OrderRepo) AssignDriver(ctx context.Context, id, driverID, driverName string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.DriverID = driverID
	o.DriverName = driverName
	o.UpdatedAt = at
	r.s.orders[id] = o
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

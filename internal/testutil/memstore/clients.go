package memstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *c
	updated.TotalOrders = current.TotalOrders
	updated.TotalRevenue = current.TotalRevenue
	updated.LastOrderDate = current.LastOrderDate
	r.s.clients[c.ID] = updated
	return nil
}

func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Client
	for _, c := range r.s.clients {
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Search != "" && !contains(c.Name, f.Search) && !contains(c.Email, f.Search) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sortNewestFirst(list, func(c *entity.Client) int64 { return c.CreatedAt.UnixNano() }, func(c *entity.Client) string { return c.ID })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *ClientRepo) RecordOrder(ctx context.Context, id string, total decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailRecordOrder != nil {
		return r.s.FailRecordOrder
	}
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalOrders++
	c.TotalRevenue = c.TotalRevenue.Add(total)
	c.LastOrderDate = &at
	r.s.clients[id] = c
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}

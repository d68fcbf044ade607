package memstore

import (
	"context"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.CurrentStock = current.CurrentStock
	r.s.products[p.ID] = updated
	return nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !contains(p.Name, f.Search) && !contains(p.SKU, f.Search) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sortNewestFirst(list, func(p *entity.Product) int64 { return p.CreatedAt.UnixNano() }, func(p *entity.Product) string { return p.ID })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	list, _, err := r.List(ctx, repository.ProductFilter{LowStock: true})
	return list, err
}

func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAdjustStock != nil {
		return false, r.s.FailAdjustStock
	}
	p, ok := r.s.products[id]
	if !ok || p.CurrentStock+delta < 0 {
		return false, nil
	}
	p.CurrentStock += delta
	r.s.products[id] = p
	return true, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

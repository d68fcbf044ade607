package memstore

import (
	"context"
	"time"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes en memoria.
type BatchRepo struct{ s *Store }

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batches[b.ID] = cloneBatch(*b)
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	b = cloneBatch(b)
	return &b, nil
}

func (r *BatchRepo) Update(ctx context.Context, in *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.batches[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneBatch(*in)
	updated.Status = current.Status
	r.s.batches[in.ID] = updated
	return nil
}

func (r *BatchRepo) UpdateStatus(ctx context.Context, id, from, to string, startDate, endDate *time.Time, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if startDate != nil {
		b.StartDate = startDate
	}
	if endDate != nil {
		b.EndDate = endDate
	}
	b.UpdatedAt = at
	r.s.batches[id] = b
	return true, nil
}

func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.Batch, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Batch
	for _, b := range r.s.batches {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		b = cloneBatch(b)
		list = append(list, &b)
	}
	sortNewestFirst(list, func(b *entity.Batch) int64 { return b.CreatedAt.UnixNano() }, func(b *entity.Batch) string { return b.ID })
	return page(list, f.Limit, f.Offset), len(list), nil
}

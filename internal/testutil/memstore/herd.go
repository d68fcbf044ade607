package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.HerdRepository = (*HerdRepo)(nil)

// HerdRepo almacén del hato en memoria, independiente de Store como lo es el backend real.
type HerdRepo struct {
	mu     sync.Mutex
	cows   map[string]entity.Cow
	milk   []entity.MilkRecord
	health map[string]entity.HealthRecord
	feed   []entity.FeedRecord
}

// NewHerd crea un almacén de hato vacío.
func NewHerd() *HerdRepo {
	return &HerdRepo{cows: map[string]entity.Cow{}, health: map[string]entity.HealthRecord{}}
}

func (r *HerdRepo) CreateCow(ctx context.Context, cow *entity.Cow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cows {
		if c.TagNumber == cow.TagNumber {
			return domain.ErrDuplicate
		}
	}
	r.cows[cow.ID] = *cow
	return nil
}

func (r *HerdRepo) GetCow(ctx context.Context, id string) (*entity.Cow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *HerdRepo) UpdateCow(ctx context.Context, cow *entity.Cow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cows[cow.ID]; !ok {
		return domain.ErrNotFound
	}
	r.cows[cow.ID] = *cow
	return nil
}

func (r *HerdRepo) DeleteCow(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.cows, id)
	return nil
}

func (r *HerdRepo) ListCows(ctx context.Context, f repository.CowFilter) ([]*entity.Cow, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Cow
	for _, c := range r.cows {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Search != "" && !contains(c.TagNumber, f.Search) && !contains(c.Name, f.Search) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TagNumber < list[j].TagNumber })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func inRecordRange(cowID string, date time.Time, f repository.HerdRecordFilter) bool {
	if f.CowID != "" && cowID != f.CowID {
		return false
	}
	if f.From != nil && date.Before(*f.From) {
		return false
	}
	if f.To != nil && !date.Before(*f.To) {
		return false
	}
	return true
}

func (r *HerdRepo) CreateMilkRecord(ctx context.Context, rec *entity.MilkRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.milk {
		if m.CowID == rec.CowID && m.Date.Equal(rec.Date) && m.Shift == rec.Shift {
			return domain.ErrDuplicate
		}
	}
	r.milk = append(r.milk, *rec)
	return nil
}

func (r *HerdRepo) ListMilkRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.MilkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.MilkRecord
	for _, m := range r.milk {
		if inRecordRange(m.CowID, m.Date, f) {
			m := m
			list = append(list, &m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, f.Limit, f.Offset), nil
}

func (r *HerdRepo) MilkSummary(ctx context.Context, from, to time.Time) ([]entity.MilkDailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	type agg struct {
		sum  entity.MilkDailySummary
		cows map[string]bool
	}
	byDay := map[time.Time]*agg{}
	for _, m := range r.milk {
		if m.Date.Before(from) || !m.Date.Before(to) {
			continue
		}
		d := m.Date.UTC().Truncate(24 * time.Hour)
		a, ok := byDay[d]
		if !ok {
			a = &agg{sum: entity.MilkDailySummary{Date: d, TotalLiters: decimal.Zero}, cows: map[string]bool{}}
			byDay[d] = a
		}
		a.sum.TotalLiters = a.sum.TotalLiters.Add(m.Liters)
		a.sum.Records++
		a.cows[m.CowID] = true
	}
	out := make([]entity.MilkDailySummary, 0, len(byDay))
	for _, a := range byDay {
		a.sum.Cows = len(a.cows)
		out = append(out, a.sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *HerdRepo) CreateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.health[rec.ID] = *rec
	return nil
}

func (r *HerdRepo) GetHealthRecord(ctx context.Context, id string) (*entity.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.health[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *HerdRepo) UpdateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.health[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.health[rec.ID] = *rec
	return nil
}

func (r *HerdRepo) ListHealthRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.HealthRecord
	for _, h := range r.health {
		if inRecordRange(h.CowID, h.Date, f) {
			h := h
			list = append(list, &h)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r *HerdRepo) CreateFeedRecord(ctx context.Context, rec *entity.FeedRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feed = append(r.feed, *rec)
	return nil
}

func (r *HerdRepo) ListFeedRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.FeedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.FeedRecord
	for _, fr := range r.feed {
		if inRecordRange(fr.CowID, fr.Date, f) {
			fr := fr
			list = append(list, &fr)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, f.Limit, f.Offset), nil
}

func (r *HerdRepo) Stats(ctx context.Context, dayStart time.Time) (int, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cows := 0
	for _, c := range r.cows {
		if c.Status != entity.CowStatusSold && c.Status != entity.CowStatusDeceased {
			cows++
		}
	}
	liters := decimal.Zero
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, m := range r.milk {
		if !m.Date.Before(dayStart) && m.Date.Before(dayEnd) {
			liters = liters.Add(m.Liters)
		}
	}
	return cows, liters, nil
}

package herdstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

var _ repository.HerdRepository = (*Repo)(nil)

// Repo implementación de HerdRepository sobre gorm.
type Repo struct {
	db *gorm.DB
}

// NewRepository construye el adaptador.
func NewRepository(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ── Vacas ─────────────────────────────────────────────────────────────────────

func (r *Repo) CreateCow(ctx context.Context, cow *entity.Cow) error {
	m := cowFromEntity(cow)
	return translate(r.db.WithContext(ctx).Create(&m).Error, "create cow")
}

func (r *Repo) GetCow(ctx context.Context, id string) (*entity.Cow, error) {
	var m cowModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cow: %w", err)
	}
	return m.toEntity(), nil
}

func (r *Repo) UpdateCow(ctx context.Context, cow *entity.Cow) error {
	m := cowFromEntity(cow)
	res := r.db.WithContext(ctx).Model(&cowModel{ID: cow.ID}).Select(
		"Name", "Breed", "BirthDate", "Status", "LactationNumber", "Notes", "UpdatedAt",
	).Updates(&m)
	if res.Error != nil {
		return translate(res.Error, "update cow")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteCow(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&cowModel{})
	if res.Error != nil {
		return translate(res.Error, "delete cow")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) ListCows(ctx context.Context, f repository.CowFilter) ([]*entity.Cow, int, error) {
	q := r.db.WithContext(ctx).Model(&cowModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("tag_number LIKE ? OR name LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count cows: %w", err)
	}
	var rows []cowModel
	if err := q.Order("tag_number").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list cows: %w", err)
	}
	out := make([]*entity.Cow, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, int(total), nil
}

// ── Registros ─────────────────────────────────────────────────────────────────

func applyRecordFilter(q *gorm.DB, f repository.HerdRecordFilter) *gorm.DB {
	if f.CowID != "" {
		q = q.Where("cow_id = ?", f.CowID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}
	return q.Order("date DESC").Order("id").Limit(f.Limit).Offset(f.Offset)
}

func (r *Repo) CreateMilkRecord(ctx context.Context, rec *entity.MilkRecord) error {
	m := milkFromEntity(rec)
	return translate(r.db.WithContext(ctx).Create(&m).Error, "create milk record")
}

func (r *Repo) ListMilkRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.MilkRecord, error) {
	var rows []milkRecordModel
	if err := applyRecordFilter(r.db.WithContext(ctx), f).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list milk records: %w", err)
	}
	out := make([]*entity.MilkRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *Repo) MilkSummary(ctx context.Context, from, to time.Time) ([]entity.MilkDailySummary, error) {
	var rows []struct {
		Day         time.Time
		TotalLiters decimal.Decimal
		Records     int
		Cows        int
	}
	err := r.db.WithContext(ctx).Model(&milkRecordModel{}).
		Select("date AS day, SUM(liters) AS total_liters, COUNT(*) AS records, COUNT(DISTINCT cow_id) AS cows").
		Where("date >= ? AND date < ?", from, to).
		Group("date").Order("date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("milk summary: %w", err)
	}
	out := make([]entity.MilkDailySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.MilkDailySummary{Date: row.Day, TotalLiters: row.TotalLiters, Records: row.Records, Cows: row.Cows})
	}
	return out, nil
}

func (r *Repo) CreateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error {
	m := healthFromEntity(rec)
	return translate(r.db.WithContext(ctx).Create(&m).Error, "create health record")
}

func (r *Repo) GetHealthRecord(ctx context.Context, id string) (*entity.HealthRecord, error) {
	var m healthRecordModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get health record: %w", err)
	}
	return m.toEntity(), nil
}

func (r *Repo) UpdateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error {
	m := healthFromEntity(rec)
	res := r.db.WithContext(ctx).Model(&healthRecordModel{ID: rec.ID}).Select(
		"Diagnosis", "Treatment", "Veterinarian", "Cost", "NextCheckDate", "UpdatedAt",
	).Updates(&m)
	if res.Error != nil {
		return translate(res.Error, "update health record")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) ListHealthRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.HealthRecord, error) {
	var rows []healthRecordModel
	if err := applyRecordFilter(r.db.WithContext(ctx), f).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	out := make([]*entity.HealthRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *Repo) CreateFeedRecord(ctx context.Context, rec *entity.FeedRecord) error {
	m := feedFromEntity(rec)
	return translate(r.db.WithContext(ctx).Create(&m).Error, "create feed record")
}

func (r *Repo) ListFeedRecords(ctx context.Context, f repository.HerdRecordFilter) ([]*entity.FeedRecord, error) {
	var rows []feedRecordModel
	if err := applyRecordFilter(r.db.WithContext(ctx), f).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list feed records: %w", err)
	}
	out := make([]*entity.FeedRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Stats vacas en el hato (sin vendidas ni muertas) y litros ordeñados desde dayStart.
func (r *Repo) Stats(ctx context.Context, dayStart time.Time) (int, decimal.Decimal, error) {
	var cows int64
	err := r.db.WithContext(ctx).Model(&cowModel{}).
		Where("status NOT IN ?", []string{entity.CowStatusSold, entity.CowStatusDeceased}).
		Count(&cows).Error
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("count herd: %w", err)
	}
	var liters decimal.NullDecimal
	err = r.db.WithContext(ctx).Model(&milkRecordModel{}).
		Select("SUM(liters)").
		Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Scan(&liters).Error
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("today liters: %w", err)
	}
	if !liters.Valid {
		return int(cows), decimal.Zero, nil
	}
	return int(cows), liters.Decimal, nil
}

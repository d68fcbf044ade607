package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// CowFilter criterios de listado del hato.
type CowFilter struct {
	Status string
	Search string // arete o nombre
	Limit  int
	Offset int
}

// HerdRecordFilter filtro común para ordeños, sanidad y alimentación. CowID vacío = todas.
type HerdRecordFilter struct {
	CowID  string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// HerdRepository puerto del almacén del hato (backend independiente del principal).
type HerdRepository interface {
	CreateCow(ctx context.Context, cow *entity.Cow) error
	GetCow(ctx context.Context, id string) (*entity.Cow, error)
	UpdateCow(ctx context.Context, cow *entity.Cow) error
	DeleteCow(ctx context.Context, id string) error
	ListCows(ctx context.Context, f CowFilter) ([]*entity.Cow, int, error)

	CreateMilkRecord(ctx context.Context, rec *entity.MilkRecord) error
	ListMilkRecords(ctx context.Context, f HerdRecordFilter) ([]*entity.MilkRecord, error)
	MilkSummary(ctx context.Context, from, to time.Time) ([]entity.MilkDailySummary, error)

	CreateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error
	GetHealthRecord(ctx context.Context, id string) (*entity.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, rec *entity.HealthRecord) error
	ListHealthRecords(ctx context.Context, f HerdRecordFilter) ([]*entity.HealthRecord, error)

	CreateFeedRecord(ctx context.Context, rec *entity.FeedRecord) error
	ListFeedRecords(ctx context.Context, f HerdRecordFilter) ([]*entity.FeedRecord, error)

	// Stats tamaño del hato (vacas no vendidas ni muertas) y litros del día.
	Stats(ctx context.Context, dayStart time.Time) (cows int, liters decimal.Decimal, err error)
}

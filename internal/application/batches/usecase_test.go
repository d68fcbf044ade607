package batches_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/batches"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

type seq struct{ n int }

func (s *seq) Next(prefix string) string { s.n++; return fmt.Sprintf("%s-%d", prefix, s.n) }

func setup(t *testing.T) (*batches.UseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Products.Create(context.Background(), &entity.Product{
		ID: "p-yog", SKU: "YOG-1", Name: "Yogur natural", UnitPrice: decimal.NewFromInt(3), CurrentStock: 4, IsActive: true, CreatedAt: time.Now(),
	}))
	return batches.NewUseCase(store.Batches, store.Products, store, &seq{}, nil), store
}

func TestBatch_CicloCompletoSumaStock(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	b, err := uc.Create(ctx, "u-1", dto.CreateBatchRequest{ProductType: "yogur", ProductID: "p-yog", Quantity: 50, Unit: "unit"})
	require.NoError(t, err)
	assert.Equal(t, "BATCH-1", b.BatchNumber)
	assert.Equal(t, entity.BatchStatusPending, b.Status)

	_, err = uc.UpdateStatus(ctx, b.ID, dto.UpdateBatchStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	started, err := uc.UpdateStatus(ctx, b.ID, dto.UpdateBatchStatusRequest{Status: "in-progress"})
	require.NoError(t, err)
	require.NotNil(t, started.StartDate)

	done, err := uc.UpdateStatus(ctx, b.ID, dto.UpdateBatchStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, done.EndDate)

	p, err := store.Products.GetByID(ctx, "p-yog")
	require.NoError(t, err)
	assert.Equal(t, 54, p.CurrentStock)

	qty := 10
	_, err = uc.Update(ctx, b.ID, dto.UpdateBatchRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict, "un lote finalizado no se edita")
}

func TestBatch_FallidoNoSumaStock(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	b, err := uc.Create(ctx, "u-1", dto.CreateBatchRequest{ProductType: "yogur", ProductID: "p-yog", Quantity: 50, Unit: "unit"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, b.ID, dto.UpdateBatchStatusRequest{Status: "in-progress"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, b.ID, dto.UpdateBatchStatusRequest{Status: "failed"})
	require.NoError(t, err)

	p, err := store.Products.GetByID(ctx, "p-yog")
	require.NoError(t, err)
	assert.Equal(t, 4, p.CurrentStock)
}

func TestBatch_ProductoInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Create(context.Background(), "u-1", dto.CreateBatchRequest{ProductType: "queso", ProductID: "nope", Quantity: 1, Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatch_ControlDeCalidad(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	b, err := uc.Create(ctx, "u-1", dto.CreateBatchRequest{ProductType: "leche", Quantity: 500, Unit: "liter"})
	require.NoError(t, err)

	ok, err := uc.RecordQualityCheck(ctx, b.ID, "u-qa", dto.QualityCheckRequest{
		Temperature: decimal.RequireFromString("4.2"), PH: decimal.RequireFromString("6.6"), Bacteria: 30000,
	})
	require.NoError(t, err)
	require.NotNil(t, ok.QualityChecks)
	assert.True(t, ok.QualityChecks.Passed)
	assert.Equal(t, "u-qa", ok.QualityChecks.CheckedBy)

	bad, err := uc.RecordQualityCheck(ctx, b.ID, "u-qa", dto.QualityCheckRequest{
		Temperature: decimal.RequireFromString("12"), PH: decimal.RequireFromString("6.6"), Bacteria: 30000,
	})
	require.NoError(t, err)
	assert.False(t, bad.QualityChecks.Passed)

	stored, err := uc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, stored.QualityChecks.Passed)
	assert.Equal(t, entity.BatchStatusPending, stored.Status, "registrar calidad no cambia el estado")

	list, err := uc.List(ctx, dto.BatchFilterRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

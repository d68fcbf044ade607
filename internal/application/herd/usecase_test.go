package herd_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/herd"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*herd.UseCase, *dto.CowResponse) {
	t.Helper()
	uc := herd.NewUseCase(memstore.NewHerd())
	uc.SetClock(func() time.Time { return time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC) })
	cow, err := uc.CreateCow(context.Background(), dto.CreateCowRequest{TagNumber: " co-017 ", Name: "Lucera", Breed: "Holstein", BirthDate: "2021-04-02"})
	require.NoError(t, err)
	return uc, cow
}

func TestCows(t *testing.T) {
	ctx := context.Background()
	uc, cow := setup(t)
	assert.Equal(t, "CO-017", cow.TagNumber)
	assert.Equal(t, entity.CowStatusActive, cow.Status)

	_, err := uc.CreateCow(ctx, dto.CreateCowRequest{TagNumber: "CO-017"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateCow(ctx, dto.CreateCowRequest{TagNumber: "CO-099", BirthDate: "2030-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dry := entity.CowStatusDry
	updated, err := uc.UpdateCow(ctx, cow.ID, dto.UpdateCowRequest{Status: &dry})
	require.NoError(t, err)
	assert.Equal(t, dry, updated.Status)

	list, err := uc.ListCows(ctx, dto.CowFilterRequest{Search: "luce"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.DeleteCow(ctx, cow.ID))
	_, err = uc.GetCow(ctx, cow.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMilkRecords(t *testing.T) {
	ctx := context.Background()
	uc, cow := setup(t)

	_, err := uc.CreateMilkRecord(ctx, "u-1", dto.CreateMilkRecordRequest{CowID: cow.ID, Date: "2026-03-10", Shift: "morning", Liters: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "litros en cero")

	_, err = uc.CreateMilkRecord(ctx, "u-1", dto.CreateMilkRecordRequest{CowID: "nope", Date: "2026-03-10", Shift: "morning", Liters: dec("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, r := range []dto.CreateMilkRecordRequest{
		{CowID: cow.ID, Date: "2026-03-09", Shift: "morning", Liters: dec("14.5")},
		{CowID: cow.ID, Date: "2026-03-10", Shift: "morning", Liters: dec("15")},
		{CowID: cow.ID, Date: "2026-03-10", Shift: "evening", Liters: dec("12.25")},
	} {
		_, err := uc.CreateMilkRecord(ctx, "u-1", r)
		require.NoError(t, err)
	}
	_, err = uc.CreateMilkRecord(ctx, "u-1", dto.CreateMilkRecordRequest{CowID: cow.ID, Date: "2026-03-10", Shift: "evening", Liters: dec("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.ListMilkRecords(ctx, dto.HerdRecordFilterRequest{CowID: cow.ID, From: "2026-03-10", To: "2026-03-10"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	summary, err := uc.MilkSummary(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "2026-03-10", summary[1].Date)
	assert.True(t, summary[1].TotalLiters.Equal(dec("27.25")))
	assert.Equal(t, 1, summary[1].Cows)

	cows, liters, err := uc.Stats(ctx, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, cows)
	assert.True(t, liters.Equal(dec("27.25")))
}

func TestHealthAndFeed(t *testing.T) {
	ctx := context.Background()
	uc, cow := setup(t)

	rec, err := uc.CreateHealthRecord(ctx, dto.CreateHealthRecordRequest{
		CowID: cow.ID, Date: "2026-03-05", Type: "vaccination", Veterinarian: "Dra. Gómez", Cost: dec("35"), NextCheckDate: "2026-09-05",
	})
	require.NoError(t, err)
	require.NotNil(t, rec.NextCheckDate)

	_, err = uc.CreateHealthRecord(ctx, dto.CreateHealthRecordRequest{CowID: cow.ID, Date: "2026-03-05", Type: "checkup", NextCheckDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	diag := "Mastitis leve"
	upd, err := uc.UpdateHealthRecord(ctx, rec.ID, dto.UpdateHealthRecordRequest{Diagnosis: &diag})
	require.NoError(t, err)
	assert.Equal(t, diag, upd.Diagnosis)

	health, err := uc.ListHealthRecords(ctx, dto.HerdRecordFilterRequest{CowID: cow.ID})
	require.NoError(t, err)
	assert.Len(t, health, 1)

	_, err = uc.CreateFeedRecord(ctx, dto.CreateFeedRecordRequest{Date: "2026-03-10", FeedType: "silo de maíz", QuantityKg: dec("250"), Cost: dec("80")})
	require.NoError(t, err, "sin vaca aplica a todo el hato")
	_, err = uc.CreateFeedRecord(ctx, dto.CreateFeedRecordRequest{Date: "2026-03-10", FeedType: "heno", QuantityKg: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	feed, err := uc.ListFeedRecords(ctx, dto.HerdRecordFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

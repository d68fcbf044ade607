package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/analytics"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Clients.Create(ctx, &entity.Client{ID: "c-1", Name: "Tienda La Esquina", CreatedAt: now}))
	require.NoError(t, s.Clients.Create(ctx, &entity.Client{ID: "c-2", Name: "Hotel Central", CreatedAt: now}))
	require.NoError(t, s.Products.Create(ctx, &entity.Product{ID: "p-milk", SKU: "LEC-1L", Name: "Leche entera 1L", CurrentStock: 2, MinStock: 5, CreatedAt: now}))
	orders := []entity.Order{
		{ID: "o-1", OrderNumber: "ORD-1", ClientID: "c-1", Status: entity.OrderStatusPending, Total: dec("12.00"), CreatedAt: now,
			Items: []entity.OrderItem{{ProductID: "p-milk", ProductName: "Leche entera 1L", Quantity: 4, Total: dec("10.00")}}},
		{ID: "o-2", OrderNumber: "ORD-2", ClientID: "c-2", Status: entity.OrderStatusDelivered, Total: dec("30.00"), CreatedAt: now.AddDate(0, 0, -2),
			Items: []entity.OrderItem{{ProductID: "p-milk", ProductName: "Leche entera 1L", Quantity: 10, Total: dec("25.00")}}},
		{ID: "o-3", OrderNumber: "ORD-3", ClientID: "c-1", Status: entity.OrderStatusCancelled, Total: dec("99.00"), CreatedAt: now},
	}
	for i := range orders {
		require.NoError(t, s.Orders.Create(ctx, &orders[i]))
	}
	return s
}

type herdStub struct {
	cows   int
	liters decimal.Decimal
	err    error
}

func (h herdStub) Stats(context.Context, time.Time) (int, decimal.Decimal, error) {
	return h.cows, h.liters, h.err
}

func TestDashboard_TotalesExcluyenCancelados(t *testing.T) {
	s := seed(t)
	uc := analytics.NewDashboardUseCase(s.Analytics, nil, nil)
	uc.SetClock(func() time.Time { return now })

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 2, stats.TodayOrders)
	assert.True(t, stats.MonthRevenue.Equal(dec("42.00")), "los cancelados no suman ingresos: %s", stats.MonthRevenue)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, "Marzo 2026", stats.Period)
	assert.Nil(t, stats.Herd)
}

func TestDashboard_ConHato(t *testing.T) {
	s := seed(t)
	uc := analytics.NewDashboardUseCase(s.Analytics, herdStub{cows: 42, liters: dec("812.5")}, nil)
	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.Herd)
	assert.Equal(t, 42, stats.Herd.Cows)

	uc = analytics.NewDashboardUseCase(s.Analytics, herdStub{err: errors.New("mysql caído")}, nil)
	stats, err = uc.GetStats(context.Background())
	require.NoError(t, err, "el tablero responde aunque falle el hato")
	assert.Nil(t, stats.Herd)
}

type exporterSpy struct{ days, products, clients int }

func (e *exporterSpy) ExportSales(r *dto.SalesReportResponse, p []dto.TopProductDTO, c []dto.TopClientDTO) ([]byte, error) {
	e.days, e.products, e.clients = len(r.Days), len(p), len(c)
	return []byte("xlsx"), nil
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	spy := &exporterSpy{}
	uc := analytics.NewReportsUseCase(s.Analytics, spy)
	uc.SetClock(func() time.Time { return now })

	sales, err := uc.Sales(ctx, dto.ReportRangeRequest{})
	require.NoError(t, err)
	require.Len(t, sales.Days, 2)
	assert.Equal(t, "2026-03-08", sales.Days[0].Date)
	assert.Equal(t, 2, sales.TotalOrders)
	assert.True(t, sales.TotalRevenue.Equal(dec("42.00")))

	only, err := uc.Sales(ctx, dto.ReportRangeRequest{From: "2026-03-10", To: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, only.TotalOrders, "to es inclusivo")

	products, err := uc.TopProducts(ctx, dto.ReportRangeRequest{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "LEC-1L", products[0].SKU)
	assert.Equal(t, 14, products[0].Units)

	clients, err := uc.TopClients(ctx, dto.ReportRangeRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Hotel Central", clients[0].ClientName)

	_, err = uc.Sales(ctx, dto.ReportRangeRequest{From: "2026-03-11", To: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	data, name, err := uc.ExportSales(ctx, dto.ReportRangeRequest{From: "2026-03-01", To: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "ventas_20260301_20260310.xlsx", name)
	assert.Equal(t, 2, spy.days)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/usecase"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

func newProductRequest(sku string, stock, min int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:          sku,
		Name:         "Leche entera " + sku,
		Category:     "milk",
		Unit:         "liter",
		UnitPrice:    decimal.RequireFromString("2.50"),
		CurrentStock: stock,
		MinStock:     min,
	}
}

func TestProductUseCase_CreateSKUDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memstore.New().Products, nil)

	p, err := uc.Create(ctx, newProductRequest("lch-1", 10, 2))
	require.NoError(t, err)
	assert.Equal(t, "LCH-1", p.SKU)
	assert.True(t, p.IsActive)

	_, err = uc.Create(ctx, newProductRequest("LCH-1", 5, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	created, err := uc.ImportRow(ctx, newProductRequest("lch-1", 5, 1))
	require.NoError(t, err)
	assert.False(t, created, "el importador omite SKUs existentes")
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memstore.New().Products, nil)
	p, err := uc.Create(ctx, newProductRequest("Q-1", 10, 2))
	require.NoError(t, err)

	price := decimal.RequireFromString("3.456")
	name := "Queso fresco"
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Queso fresco", out.Name)
	assert.Equal(t, "3.46", out.UnitPrice.StringFixed(2))
	assert.Equal(t, 10, out.CurrentStock)

	missing, err := uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUseCase_AdjustStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memstore.New().Products, nil)
	p, err := uc.Create(ctx, newProductRequest("Y-1", 5, 3))
	require.NoError(t, err)

	out, err := uc.AdjustStock(ctx, p.ID, dto.AdjustStockRequest{Delta: -3, Reason: "merma"}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.CurrentStock)
	assert.True(t, out.LowStock)

	_, err = uc.AdjustStock(ctx, p.ID, dto.AdjustStockRequest{Delta: -3}, "u-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentStock, "un ajuste rechazado no modifica el stock")

	_, err = uc.AdjustStock(ctx, "no-existe", dto.AdjustStockRequest{Delta: 1}, "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p.ID, low[0].ID)
}

func TestProductUseCase_ListFiltros(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memstore.New().Products, nil)
	_, err := uc.Create(ctx, newProductRequest("A", 10, 2))
	require.NoError(t, err)
	cheese := newProductRequest("B", 1, 2)
	cheese.Category = "cheese"
	_, err = uc.Create(ctx, cheese)
	require.NoError(t, err)

	all, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	onlyCheese, err := uc.List(ctx, dto.ProductFilterRequest{Category: "cheese"})
	require.NoError(t, err)
	require.Len(t, onlyCheese.Items, 1)
	assert.Equal(t, "B", onlyCheese.Items[0].SKU)

	low, err := uc.List(ctx, dto.ProductFilterRequest{LowStock: true})
	require.NoError(t, err)
	assert.Len(t, low.Items, 1)
}

func TestClientUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(memstore.New().Clients)

	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: " Tienda La Vaca ", Type: "retail", Email: "Compras@LaVaca.com"})
	require.NoError(t, err)
	assert.Equal(t, "Tienda La Vaca", c.Name)
	assert.Equal(t, "compras@lavaca.com", c.Email)
	assert.Equal(t, 0, c.TotalOrders)
	assert.True(t, c.TotalRevenue.IsZero())

	city := "Medellín"
	out, err := uc.Update(ctx, c.ID, dto.UpdateClientRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Medellín", out.City)

	created, err := uc.ImportRow(ctx, dto.CreateClientRequest{Name: "tienda la vaca", Type: "retail"})
	require.NoError(t, err)
	assert.False(t, created)

	list, err := uc.List(ctx, dto.ClientFilterRequest{Type: "retail"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.Delete(ctx, c.ID))
	gone, err := uc.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUserUseCase_CreateYActualiza(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memstore.New().Users)

	u, err := uc.Create(ctx, dto.CreateUserRequest{Email: "Driver@Farm.co", Password: "password123", Name: "Ana", Role: "driver"})
	require.NoError(t, err)
	assert.Equal(t, "driver@farm.co", u.Email)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "driver@farm.co", Password: "password123", Name: "Otra", Role: "staff"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	inactive := "inactive"
	out, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "inactive", out.Status)

	assert.ErrorIs(t, uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict)

	list, err := uc.List(ctx, "driver", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

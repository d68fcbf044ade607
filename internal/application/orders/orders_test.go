package orders_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

type seqNumbers struct{ n int64 }

func (s *seqNumbers) Next(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&s.n, 1))
}

type recorder struct {
	mu     sync.Mutex
	events []dto.OrderEvent
}

func (r *recorder) Publish(ev dto.OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type memIdempotency struct {
	mu     sync.Mutex
	locked map[string]bool
	data   map[string][]byte
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{locked: map[string]bool{}, data: map[string][]byte{}}
}

func (m *memIdempotency) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[key] {
		return nil, domain.ErrIdempotencyInFlight
	}
	m.locked[key] = true
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.locked, key)
	}, nil
}

func (m *memIdempotency) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memIdempotency) Save(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

type fixture struct {
	ctx      context.Context
	store    *memstore.Store
	uc       *orders.UseCase
	notifier *recorder
	idem     *memIdempotency
	client   *entity.Client
	milk     *entity.Product
	cheese   *entity.Product
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	client := &entity.Client{ID: "c-1", Name: "Tienda La Vaca", Type: entity.ClientTypeRetail, IsActive: true, TotalRevenue: decimal.Zero, CreatedAt: now}
	require.NoError(t, store.Clients.Create(ctx, client))
	milk := &entity.Product{ID: "p-milk", SKU: "LCH-1L", Name: "Leche entera 1L", Category: entity.CategoryMilk, Unit: "liter",
		UnitPrice: decimal.RequireFromString("2.50"), CurrentStock: 10, MinStock: 2, IsActive: true, CreatedAt: now}
	require.NoError(t, store.Products.Create(ctx, milk))
	cheese := &entity.Product{ID: "p-cheese", SKU: "QSO-500", Name: "Queso campesino 500g", Category: entity.CategoryCheese, Unit: "unit",
		UnitPrice: decimal.RequireFromString("7.35"), CurrentStock: 5, MinStock: 1, IsActive: true, CreatedAt: now}
	require.NoError(t, store.Products.Create(ctx, cheese))
	require.NoError(t, store.Users.Create(ctx, &entity.User{ID: "u-driver", Email: "driver@farm.co", Name: "Pedro Repartidor", Role: entity.RoleDriver, Status: entity.UserStatusActive}))

	notifier := &recorder{}
	idem := newMemIdempotency()
	cfg := orders.DefaultConfig()
	cfg.StrictTransitions = strict
	uc := orders.NewUseCase(orders.Deps{
		Orders:      store.Orders,
		Products:    store.Products,
		Clients:     store.Clients,
		Users:       store.Users,
		Tx:          store,
		Idempotency: idem,
		Notifier:    notifier,
		Numbers:     &seqNumbers{},
	}, cfg, nil)
	uc.SetClock(func() time.Time { return now })

	return &fixture{ctx: ctx, store: store, uc: uc, notifier: notifier, idem: idem, client: client, milk: milk, cheese: cheese}
}

func (f *fixture) request(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ClientID:        f.client.ID,
		Items:           items,
		DeliveryAddress: "Cra 10 # 20-30",
		DeliveryDate:    "2026-03-12",
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	_, total, err := f.store.Orders.List(f.ctx, memstoreAll())
	require.NoError(t, err)
	return total
}

func (f *fixture) create(t *testing.T, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	out, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(items...))
	require.NoError(t, err)
	return out
}

func TestCreateOrder_EscenarioDeReferencia(t *testing.T) {
	f := newFixture(t, true)

	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})

	assert.Equal(t, "10.00", out.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", out.Tax.StringFixed(2))
	assert.Equal(t, "12.00", out.Total.StringFixed(2))
	assert.Equal(t, "ORD-1", out.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, out.Status, out.Tracking.Status)
	require.Len(t, out.Tracking.Events, 1)
	assert.Equal(t, orders.NoteOrderCreated, out.Tracking.Events[0].Note)
	assert.Equal(t, 6, f.stock(t, f.milk.ID))

	client, err := f.store.Clients.GetByID(f.ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, client.TotalOrders)
	assert.Equal(t, "12.00", client.TotalRevenue.StringFixed(2))
	require.NotNil(t, client.LastOrderDate)

	cancelled, err := f.uc.CancelOrder(f.ctx, out.ID, "u-1", dto.CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.stock(t, f.milk.ID))
}

func TestCreateOrder_TotalesConsistentes(t *testing.T) {
	cases := []struct {
		milk, cheese int
	}{
		{1, 0}, {3, 1}, {7, 3}, {10, 5}, {0, 2},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d-%d", tc.milk, tc.cheese), func(t *testing.T) {
			f := newFixture(t, true)
			var items []dto.OrderItemRequest
			if tc.milk > 0 {
				items = append(items, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: tc.milk})
			}
			if tc.cheese > 0 {
				items = append(items, dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: tc.cheese})
			}
			out := f.create(t, items...)

			sum := decimal.Zero
			for _, it := range out.Items {
				assert.True(t, it.Total.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))))
				sum = sum.Add(it.Total)
			}
			assert.True(t, sum.Equal(out.Subtotal), "Σ líneas == subtotal")
			assert.True(t, out.Tax.Equal(out.Subtotal.Mul(decimal.RequireFromString("0.20")).Round(2)))
			assert.True(t, out.Total.Equal(out.Subtotal.Add(out.Tax).Sub(out.Discount)))
			assert.Equal(t, 10-tc.milk, f.stock(t, f.milk.ID))
			assert.Equal(t, 5-tc.cheese, f.stock(t, f.cheese.ID))
		})
	}
}

func TestCreateOrder_StockInsuficienteNoPersiste(t *testing.T) {
	f := newFixture(t, true)

	_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 6},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, f.orderCount(t))
	assert.Equal(t, 10, f.stock(t, f.milk.ID))
	assert.Equal(t, 5, f.stock(t, f.cheese.ID))

	client, err := f.store.Clients.GetByID(f.ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, client.TotalOrders)
}

func TestCreateOrder_LineasRepetidasSeAgrupan(t *testing.T) {
	f := newFixture(t, true)

	_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 3},
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 3},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "3+3 supera el stock de 5")

	out := f.create(t,
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 3},
	)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.Equal(t, 0, f.stock(t, f.cheese.ID))
}

func TestCreateOrder_CantidadAgrupadaFueraDeRango(t *testing.T) {
	f := newFixture(t, true)

	_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: math.MaxInt},
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 2},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	_, _, err = f.uc.CreateOrder(f.ctx, "u-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: math.MaxInt32},
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 10, f.stock(t, f.milk.ID))
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCreateOrder_ValidacionesEnOrden(t *testing.T) {
	f := newFixture(t, true)

	req := f.request(dto.OrderItemRequest{ProductID: "no-existe", Quantity: 1})
	req.ClientID = "c-x"
	_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente primero")

	_, _, err = f.uc.CreateOrder(f.ctx, "u-1", "", f.request(dto.OrderItemRequest{ProductID: "no-existe", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := f.request(dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})
	bad.DeliveryDate = "12/03/2026"
	_, _, err = f.uc.CreateOrder(f.ctx, "u-1", "", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCreateOrder_RollbackSiFallaElCliente(t *testing.T) {
	f := newFixture(t, true)
	f.store.FailRecordOrder = errors.New("conexión perdida")

	_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4}))
	require.Error(t, err)
	assert.Equal(t, 0, f.orderCount(t), "el pedido no queda huérfano")
	assert.Equal(t, 10, f.stock(t, f.milk.ID), "el stock no queda descontado")
	assert.Empty(t, f.notifier.types())
}

func TestCreateOrder_SinSobreventaConcurrente(t *testing.T) {
	f := newFixture(t, true)

	var wg sync.WaitGroup
	var ok, rejected int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.uc.CreateOrder(f.ctx, "u-1", "", f.request(dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4}))
			if err == nil {
				atomic.AddInt32(&ok, 1)
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), ok)
	assert.Equal(t, int32(3), rejected)
	assert.Equal(t, 2, f.stock(t, f.milk.ID))
	assert.Equal(t, 2, f.orderCount(t))
}

func TestCreateOrder_Idempotente(t *testing.T) {
	f := newFixture(t, true)
	req := f.request(dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})

	first, replayed, err := f.uc.CreateOrder(f.ctx, "u-1", "key-123", req)
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := f.uc.CreateOrder(f.ctx, "u-1", "key-123", req)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, 6, f.stock(t, f.milk.ID), "la repetición no descuenta de nuevo")
	assert.Equal(t, 1, f.orderCount(t))

	_, replayed, err = f.uc.CreateOrder(f.ctx, "u-2", "key-123", req)
	require.NoError(t, err)
	assert.False(t, replayed, "la llave es por usuario")
}

func TestCreateOrder_IdempotenciaEnCurso(t *testing.T) {
	f := newFixture(t, true)
	unlock, err := f.idem.Lock(f.ctx, orders.IdempotencyKey("u-1", "key-1"))
	require.NoError(t, err)
	defer unlock()

	_, _, err = f.uc.CreateOrder(f.ctx, "u-1", "key-1", f.request(dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrIdempotencyInFlight)
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCancelOrder_EntregadoNoMuta(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})
	for _, s := range []string{"confirmed", "preparing", "ready", "in-transit", "delivered"} {
		_, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: s})
		require.NoError(t, err)
	}
	before, err := f.uc.GetOrder(f.ctx, out.ID)
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(f.ctx, out.ID, "u-1", dto.CancelOrderRequest{Reason: "tarde"})
	require.ErrorIs(t, err, domain.ErrOrderDelivered)

	after, err := f.uc.GetOrder(f.ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, after.Status)
	assert.Equal(t, after.Status, after.Tracking.Status)
	assert.Len(t, after.Tracking.Events, len(before.Tracking.Events))
	assert.Equal(t, 6, f.stock(t, f.milk.ID))
}

func TestCancelOrder_RestauraStockYUnEvento(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t,
		dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4},
		dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 2},
	)
	_, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	cancelled, err := f.uc.CancelOrder(f.ctx, out.ID, "u-9", dto.CancelOrderRequest{Reason: "cliente cerró"})
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, f.milk.ID))
	assert.Equal(t, 5, f.stock(t, f.cheese.ID))

	var cancelledEvents int
	for _, ev := range cancelled.Tracking.Events {
		if ev.Status == entity.OrderStatusCancelled {
			cancelledEvents++
			assert.Equal(t, "cliente cerró", ev.Note)
			assert.Equal(t, "u-9", ev.UpdatedBy)
		}
	}
	assert.Equal(t, 1, cancelledEvents)
	assert.Len(t, cancelled.Tracking.Events, 3)

	_, err = f.uc.CancelOrder(f.ctx, out.ID, "u-1", dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Equal(t, 10, f.stock(t, f.milk.ID), "una segunda cancelación no repone dos veces")
}

func TestCancelOrder_RollbackSiFallaElEvento(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})
	f.store.FailAppendEvent = errors.New("disco lleno")

	_, err := f.uc.CancelOrder(f.ctx, out.ID, "u-1", dto.CancelOrderRequest{})
	require.Error(t, err)

	after, err := f.uc.GetOrder(f.ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, after.Status)
	assert.Equal(t, 6, f.stock(t, f.milk.ID))
}

func TestUpdateStatus_Estricto(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})

	_, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "delivered"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	var terr *domain.TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "pending", terr.From)
	assert.Equal(t, "delivered", terr.To)

	confirmed, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "confirmed", Note: "llamada ok", Location: "planta"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.Equal(t, "confirmed", confirmed.Tracking.Status)
	require.Len(t, confirmed.Tracking.Events, 2)
	last := confirmed.Tracking.Events[1]
	assert.Equal(t, "llamada ok", last.Note)
	assert.Equal(t, "planta", last.Location)

	_, err = f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "on-hold"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Comportamiento heredado: sin tabla de transiciones cualquier valor se acepta.
func TestUpdateStatus_PermisivoAceptaCualquierValor(t *testing.T) {
	f := newFixture(t, false)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})

	for _, s := range []string{"delivered", "on-hold", "pending", "in-transit"} {
		got, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: s})
		require.NoError(t, err, s)
		assert.Equal(t, s, got.Status)
		assert.Equal(t, s, got.Tracking.Status)

		stored, err := f.uc.GetOrder(f.ctx, out.ID)
		require.NoError(t, err)
		assert.Equal(t, s, stored.Status)
		assert.Equal(t, s, stored.Tracking.Status)
	}

	_, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_CancelledRepone(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})

	got, err := f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "cancelled", Note: "duplicado"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 10, f.stock(t, f.milk.ID))
	assert.Equal(t, []string{"created", "cancelled"}, f.notifier.types())
}

func TestUpdateOrder_DescuentoYEstado(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})

	discount := decimal.RequireFromString("2.00")
	addr := "Calle 5 # 1-2"
	got, err := f.uc.UpdateOrder(f.ctx, out.ID, dto.UpdateOrderRequest{Discount: &discount, DeliveryAddress: &addr})
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Total.StringFixed(2))
	assert.Equal(t, addr, got.DeliveryAddress)

	tooMuch := decimal.RequireFromString("50")
	_, err = f.uc.UpdateOrder(f.ctx, out.ID, dto.UpdateOrderRequest{Discount: &tooMuch})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, s := range []string{"confirmed", "preparing"} {
		_, err = f.uc.UpdateStatus(f.ctx, out.ID, "u-1", dto.UpdateOrderStatusRequest{Status: s})
		require.NoError(t, err)
	}
	_, err = f.uc.UpdateOrder(f.ctx, out.ID, dto.UpdateOrderRequest{DeliveryAddress: &addr})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateOrder_DescuentoConFraccionDeCentavo(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})

	subCent := decimal.RequireFromString("0.005")
	_, err := f.uc.UpdateOrder(f.ctx, out.ID, dto.UpdateOrderRequest{Discount: &subCent})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetOrder(f.ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax).Sub(got.Discount)), "total %s", got.Total)
}

func TestAssignDriver_NombreDelUsuario(t *testing.T) {
	f := newFixture(t, true)
	out := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})

	got, err := f.uc.AssignDriver(f.ctx, out.ID, dto.AssignDriverRequest{DriverID: "u-driver"})
	require.NoError(t, err)
	assert.Equal(t, "Pedro Repartidor", got.DriverName)
	assert.Equal(t, entity.OrderStatusPending, got.Status, "asignar no cambia el estado")

	got, err = f.uc.AssignDriver(f.ctx, out.ID, dto.AssignDriverRequest{DriverID: "externo-7", DriverName: "Transportes Ruta"})
	require.NoError(t, err)
	assert.Equal(t, "Transportes Ruta", got.DriverName)

	list, err := f.uc.ListOrders(f.ctx, dto.OrderFilterRequest{DriverID: "externo-7"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture(t, true)
	pending := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 4})
	confirmed := f.create(t, dto.OrderItemRequest{ProductID: f.cheese.ID, Quantity: 1})
	_, err := f.uc.UpdateStatus(f.ctx, confirmed.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.DeleteOrder(f.ctx, confirmed.ID), domain.ErrConflict)

	require.NoError(t, f.uc.DeleteOrder(f.ctx, pending.ID))
	assert.Equal(t, 10, f.stock(t, f.milk.ID))
	_, err = f.uc.GetOrder(f.ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersYTracking(t *testing.T) {
	f := newFixture(t, true)
	a := f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})
	f.create(t, dto.OrderItemRequest{ProductID: f.milk.ID, Quantity: 1})
	_, err := f.uc.UpdateStatus(f.ctx, a.ID, "u-1", dto.UpdateOrderStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	list, err := f.uc.ListOrders(f.ctx, dto.OrderFilterRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)

	byDay, err := f.uc.ListOrders(f.ctx, dto.OrderFilterRequest{From: "2026-03-10", To: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, byDay.Page.Total)

	none, err := f.uc.ListOrders(f.ctx, dto.OrderFilterRequest{From: "2026-03-11"})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Page.Total)

	tr, err := f.uc.Tracking(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", tr.Status)
	assert.Len(t, tr.Events, 2)
}

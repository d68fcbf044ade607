package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

type seq struct{ n int }

func (s *seq) Next(prefix string) string { s.n++; return fmt.Sprintf("%s-%d", prefix, s.n) }

var issued = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*billing.InvoiceUseCase, *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Clients.Create(ctx, &entity.Client{ID: "c-1", Name: "Tienda La Esquina", IsActive: true, CreatedAt: issued}))
	for _, o := range []entity.Order{
		{ID: "o-1", OrderNumber: "ORD-1", ClientID: "c-1", ClientName: "Tienda La Esquina", Status: entity.OrderStatusDelivered,
			Items:    []entity.OrderItem{{ID: "i-1", ProductID: "p-milk", ProductName: "Leche entera 1L", Quantity: 4, UnitPrice: dec("2.50"), Total: dec("10.00")}},
			Subtotal: dec("10.00"), Tax: dec("2.00"), Discount: decimal.Zero, Total: dec("12.00"), CreatedAt: issued},
		{ID: "o-2", OrderNumber: "ORD-2", ClientID: "c-1", Status: entity.OrderStatusCancelled, Total: dec("5.00"), CreatedAt: issued},
	} {
		o := o
		require.NoError(t, store.Orders.Create(ctx, &o))
	}
	uc := billing.NewInvoiceUseCase(store.Invoices, store.Orders, store, &seq{}, nil)
	uc.SetClock(func() time.Time { return issued })
	return uc, store
}

func TestCreateInvoice_CopiaPedido(t *testing.T) {
	uc, _ := setup(t)
	inv, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)

	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Total.Equal(dec("12.00")))
	assert.True(t, inv.Balance.Equal(inv.Total))
	assert.True(t, inv.AmountPaid.IsZero())
	assert.Equal(t, issued.AddDate(0, 0, billing.DefaultDueDays), inv.DueDate)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Leche entera 1L", inv.Items[0].Description)
}

func TestCreateInvoice_Rechazos(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-2"})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)

	_, err = uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1", DueDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1", DueDate: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vencimiento anterior a la emisión")

	_, err = uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)
	_, err = uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAddPayment_SaldoYEstado(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	inv, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)

	part, err := uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("5.00"), Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, part.Status)
	assert.True(t, part.Balance.Equal(dec("7.00")))
	assert.True(t, part.Balance.Equal(part.Total.Sub(part.AmountPaid)))

	_, err = uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("7.01"), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el abono no puede superar el saldo")

	paid, err := uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("7.00"), Method: "transfer", Reference: "TRX-9"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	assert.True(t, paid.Balance.IsZero())

	stored, err := uc.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Payments, 2)

	_, err = uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("1"), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateInvoice_EstadosManuales(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	inv, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)

	sent := entity.InvoiceStatusSent
	out, err := uc.UpdateInvoice(ctx, inv.ID, dto.UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, sent, out.Status)

	_, err = uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("1"), Method: "card"})
	require.NoError(t, err)

	cancelled := entity.InvoiceStatusCancelled
	_, err = uc.UpdateInvoice(ctx, inv.ID, dto.UpdateInvoiceRequest{Status: &cancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se cancela una factura con abonos")
}

// staleInvoices devuelve la copia leída antes de un abono concurrente, como una lectura sin bloqueo.
type staleInvoices struct {
	repository.InvoiceRepository
	snapshot map[string]*entity.Invoice
}

func (r *staleInvoices) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if inv, ok := r.snapshot[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return r.InvoiceRepository.GetByID(ctx, id)
}

func TestUpdateInvoice_NoPisaAbonoConcurrente(t *testing.T) {
	ctx := context.Background()
	_, store := setup(t)
	stale := &staleInvoices{InvoiceRepository: store.Invoices, snapshot: map[string]*entity.Invoice{}}
	uc := billing.NewInvoiceUseCase(stale, store.Orders, store, &seq{}, nil)
	uc.SetClock(func() time.Time { return issued })

	inv, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)
	before, err := store.Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	stale.snapshot[inv.ID] = before

	_, err = uc.AddPayment(ctx, inv.ID, "u-1", dto.AddPaymentRequest{Amount: dec("5.00"), Method: "cash"})
	require.NoError(t, err)

	notes := "entregar copia impresa"
	out, err := uc.UpdateInvoice(ctx, inv.ID, dto.UpdateInvoiceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, out.Notes)

	stored, err := store.Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.Equal(dec("5.00")), "amount_paid %s", stored.AmountPaid)
	assert.True(t, stored.Balance.Equal(dec("7.00")), "balance %s", stored.Balance)
	assert.Equal(t, entity.InvoiceStatusPartial, stored.Status)
	assert.Len(t, stored.Payments, 1)

	cancelled := entity.InvoiceStatusCancelled
	_, err = uc.UpdateInvoice(ctx, inv.ID, dto.UpdateInvoiceRequest{Status: &cancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se cancela una factura con abonos")
}

func TestMarkOverdue(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)
	inv, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1", DueDate: "2026-03-20"})
	require.NoError(t, err)

	n, err := uc.MarkOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	uc.SetClock(func() time.Time { return issued.AddDate(0, 0, 15) })
	n, err = uc.MarkOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := uc.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, got.Status)

	list, err := uc.ListInvoices(ctx, dto.InvoiceFilterRequest{Status: entity.InvoiceStatusOverdue})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

type fakeRenderer struct{ doc billing.InvoiceDocument }

func (f *fakeRenderer) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF"), nil
}

func (f *fakeRenderer) ExportInvoiceXML(doc billing.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	return []byte("<Invoice/>"), nil
}

func TestDocumentUseCase(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)
	inv, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{OrderID: "o-1"})
	require.NoError(t, err)

	r := &fakeRenderer{}
	docs := billing.NewDocumentUseCase(store.Invoices, store.Clients, billing.Issuer{Name: "Lácteos El Prado"}, r, r)

	pdf, name, err := docs.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "factura_INV-1.pdf", name)
	require.NotNil(t, r.doc.Client)
	assert.Equal(t, "Tienda La Esquina", r.doc.Client.Name)
	assert.Equal(t, "Lácteos El Prado", r.doc.Issuer.Name)

	_, name, err = docs.ExportInvoiceXML(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-1.xml", name)

	_, _, err = docs.DownloadInvoicePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

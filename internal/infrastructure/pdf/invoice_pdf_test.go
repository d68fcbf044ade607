package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"999.9":     "999,90",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"-1500":     "-1.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	issued := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := billing.InvoiceDocument{
		Issuer: billing.Issuer{Name: "Lácteos El Prado", TaxID: "900123456"},
		Invoice: &entity.Invoice{
			InvoiceNumber: "INV-1",
			IssueDate:     issued,
			DueDate:       issued.AddDate(0, 0, 30),
			Items: []entity.InvoiceItem{
				{Description: "Leche entera 1L", Quantity: 10, UnitPrice: decimal.NewFromInt(4), Total: decimal.NewFromInt(40)},
			},
			Subtotal:   decimal.NewFromInt(40),
			Tax:        decimal.NewFromInt(8),
			Total:      decimal.NewFromInt(48),
			AmountPaid: decimal.NewFromInt(10),
			Balance:    decimal.NewFromInt(38),
			Status:     entity.InvoiceStatusPartial,
			Payments:   []entity.Payment{{Amount: decimal.NewFromInt(10), Method: "cash", PaidAt: issued}},
		},
		Client: &entity.Client{Name: "Tienda La Vaca"},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_SinFactura(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), billing.InvoiceDocument{})
	assert.Error(t, err)
}

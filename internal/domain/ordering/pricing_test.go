package ordering_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/ordering"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Escenario de referencia: 4 × 2.50 = 10.00; IVA 20% = 2.00; total 12.00.
func TestCalculateTotals_EscenarioReferencia(t *testing.T) {
	line := ordering.LineTotal(d("2.50"), 4)
	require.True(t, line.Equal(d("10.00")))

	tot, err := ordering.CalculateTotals([]decimal.Decimal{line}, ordering.DefaultTaxRate, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, tot.Subtotal.Equal(d("10.00")), "subtotal %s", tot.Subtotal)
	assert.True(t, tot.Tax.Equal(d("2.00")), "tax %s", tot.Tax)
	assert.True(t, tot.Total.Equal(d("12.00")), "total %s", tot.Total)
}

func TestCalculateTotals_Invariantes(t *testing.T) {
	cases := []struct {
		name  string
		lines []decimal.Decimal
		disc  decimal.Decimal
	}{
		{"una línea", []decimal.Decimal{ordering.LineTotal(d("1.15"), 3)}, decimal.Zero},
		{"varias líneas", []decimal.Decimal{ordering.LineTotal(d("0.99"), 7), ordering.LineTotal(d("12.345"), 1)}, decimal.Zero},
		{"con descuento", []decimal.Decimal{ordering.LineTotal(d("5.00"), 10)}, d("3.50")},
		{"sin líneas", nil, decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tot, err := ordering.CalculateTotals(tc.lines, ordering.DefaultTaxRate, tc.disc)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, l := range tc.lines {
				sum = sum.Add(l)
			}
			assert.True(t, tot.Subtotal.Equal(sum))
			assert.True(t, tot.Tax.Equal(tot.Subtotal.Mul(d("0.20")).Round(2)))
			assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Tax).Sub(tot.Discount)))
		})
	}
}

func TestCalculateTotals_Rechazos(t *testing.T) {
	lines := []decimal.Decimal{d("10.00")}

	_, err := ordering.CalculateTotals(lines, d("-0.1"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ordering.CalculateTotals(lines, ordering.DefaultTaxRate, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ordering.CalculateTotals(lines, ordering.DefaultTaxRate, d("12.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el descuento no puede superar subtotal + IVA")
}

func TestCalculateTotals_DescuentoConFraccionDeCentavo(t *testing.T) {
	lines := []decimal.Decimal{ordering.LineTotal(d("2.50"), 4)}

	_, err := ordering.CalculateTotals(lines, ordering.DefaultTaxRate, d("0.005"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tot, err := ordering.CalculateTotals(lines, ordering.DefaultTaxRate, d("0.01"))
	require.NoError(t, err)
	assert.True(t, tot.Total.Equal(d("11.99")), "total %s", tot.Total)
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Tax).Sub(tot.Discount)))
}

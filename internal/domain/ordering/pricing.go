// Package ordering contiene las reglas puras del pedido: cálculo de totales y máquina de estados.
package ordering

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain"
)

// DefaultTaxRate IVA aplicado a los pedidos cuando no se configura otro.
var DefaultTaxRate = decimal.RequireFromString("0.20")

// Totals montos de cabecera del pedido.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal total de la línea: precio unitario × cantidad, redondeado a 2 decimales.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// CalculateTotals subtotal = Σ líneas; tax = round(subtotal × taxRate, 2); total = subtotal + tax - discount.
func CalculateTotals(lineTotals []decimal.Decimal, taxRate, discount decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, fmt.Errorf("%w: tasa de impuesto negativa", domain.ErrInvalidInput)
	}
	if discount.IsNegative() {
		return Totals{}, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	if !discount.Equal(discount.Round(2)) {
		return Totals{}, fmt.Errorf("%w: el descuento admite como máximo 2 decimales", domain.ErrInvalidInput)
	}
	subtotal := decimal.Zero
	for _, t := range lineTotals {
		subtotal = subtotal.Add(t)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	gross := subtotal.Add(tax)
	if discount.GreaterThan(gross) {
		return Totals{}, fmt.Errorf("%w: el descuento supera el total del pedido", domain.ErrInvalidInput)
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    gross.Sub(discount),
	}, nil
}

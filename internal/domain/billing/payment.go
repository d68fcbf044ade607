// Package billing reglas de saldo y estado de facturas.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// ApplyPayment abona amount a la factura manteniendo balance = total - amountPaid
// y deriva el estado (partial / paid). Rechaza abonos no positivos o mayores al saldo.
func ApplyPayment(inv *entity.Invoice, amount decimal.Decimal) error {
	switch inv.Status {
	case entity.InvoiceStatusCancelled, entity.InvoiceStatusPaid:
		return fmt.Errorf("%w: factura en estado %s", domain.ErrConflict, inv.Status)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: el abono debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: el abono admite como máximo 2 decimales", domain.ErrInvalidInput)
	}
	if amount.GreaterThan(inv.Balance) {
		return fmt.Errorf("%w: el abono %s supera el saldo %s", domain.ErrInvalidInput, amount.StringFixed(2), inv.Balance.StringFixed(2))
	}
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.Balance = inv.Total.Sub(inv.AmountPaid)
	if inv.Balance.IsZero() {
		inv.Status = entity.InvoiceStatusPaid
	} else {
		inv.Status = entity.InvoiceStatusPartial
	}
	return nil
}

// IsOverdue indica si la factura tiene saldo pendiente con vencimiento anterior a now.
func IsOverdue(inv *entity.Invoice, now time.Time) bool {
	switch inv.Status {
	case entity.InvoiceStatusSent, entity.InvoiceStatusPartial, entity.InvoiceStatusDraft:
		return inv.Balance.IsPositive() && inv.DueDate.Before(now)
	}
	return false
}

// ValidateManualStatus estados que se pueden fijar a mano (los demás los deriva el sistema).
func ValidateManualStatus(inv *entity.Invoice, to string) error {
	switch to {
	case entity.InvoiceStatusSent:
		if inv.Status != entity.InvoiceStatusDraft {
			return &domain.TransitionError{Entity: "invoice", From: inv.Status, To: to}
		}
		return nil
	case entity.InvoiceStatusCancelled:
		if inv.AmountPaid.IsPositive() || inv.Status == entity.InvoiceStatusCancelled {
			return &domain.TransitionError{Entity: "invoice", From: inv.Status, To: to}
		}
		return nil
	}
	return fmt.Errorf("%w: estado %q no se asigna manualmente", domain.ErrInvalidInput, to)
}

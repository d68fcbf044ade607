package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPartial   = "partial"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice cabecera de factura generada a partir de un pedido.
// Balance = Total - AmountPaid (lo mantiene billing.ApplyPayment).
type Invoice struct {
	ID            string
	InvoiceNumber string
	OrderID       string
	OrderNumber   string
	ClientID      string
	ClientName    string
	IssueDate     time.Time
	DueDate       time.Time
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
	Status        string
	Notes         string
	Payments      []Payment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem línea copiada del pedido al emitir.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Payment abono registrado contra la factura.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // cash, transfer, card, check
	Reference string
	PaidAt    time.Time
	CreatedBy string
}

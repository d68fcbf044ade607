package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest factura a partir de un pedido. DueDate opcional (por defecto +30 días).
type CreateInvoiceRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	DueDate string `json:"dueDate"`
	Notes   string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateInvoiceRequest cambios manuales. Status solo admite sent o cancelled.
type UpdateInvoiceRequest struct {
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
	DueDate *string `json:"dueDate"`
	Status  *string `json:"status" validate:"omitempty,oneof=sent cancelled"`
}

// AddPaymentRequest abono a una factura.
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"required,oneof=cash transfer card check"`
	Reference string          `json:"reference" validate:"omitempty,max=100"`
	PaidAt    string          `json:"paidAt"`
}

// InvoiceFilterRequest filtros de listado.
type InvoiceFilterRequest struct {
	PageRequest
	Status   string `query:"status"`
	ClientID string `query:"clientId"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ProductID   string          `json:"productId"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// PaymentResponse abono registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paidAt"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	OrderID       string                `json:"orderId"`
	OrderNumber   string                `json:"orderNumber,omitempty"`
	ClientID      string                `json:"clientId"`
	ClientName    string                `json:"clientName,omitempty"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       time.Time             `json:"dueDate"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	AmountPaid    decimal.Decimal       `json:"amountPaid"`
	Balance       decimal.Decimal       `json:"balance"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Payments      []PaymentResponse     `json:"payments"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

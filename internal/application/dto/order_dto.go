package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest entrada para crear un pedido. DeliveryDate en formato 2006-01-02 o RFC3339.
type CreateOrderRequest struct {
	ClientID            string             `json:"clientId" validate:"required"`
	Items               []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress     string             `json:"deliveryAddress" validate:"required,max=300"`
	DeliveryDate        string             `json:"deliveryDate" validate:"required"`
	DeliveryTime        string             `json:"deliveryTime" validate:"omitempty,max=40"`
	SpecialInstructions string             `json:"specialInstructions" validate:"omitempty,max=1000"`
}

// UpdateOrderRequest cambios permitidos mientras el pedido está pending/confirmed.
type UpdateOrderRequest struct {
	DeliveryAddress     *string          `json:"deliveryAddress" validate:"omitempty,max=300"`
	DeliveryDate        *string          `json:"deliveryDate"`
	DeliveryTime        *string          `json:"deliveryTime" validate:"omitempty,max=40"`
	SpecialInstructions *string          `json:"specialInstructions" validate:"omitempty,max=1000"`
	Discount            *decimal.Decimal `json:"discount"`
}

// UpdateOrderStatusRequest cambio de estado con datos del evento de seguimiento.
type UpdateOrderStatusRequest struct {
	Status   string `json:"status" validate:"required,max=40"`
	Note     string `json:"note" validate:"omitempty,max=500"`
	Location string `json:"location" validate:"omitempty,max=200"`
}

// AssignDriverRequest asignación de repartidor.
type AssignDriverRequest struct {
	DriverID   string `json:"driverId" validate:"required"`
	DriverName string `json:"driverName" validate:"omitempty,max=200"`
}

// CancelOrderRequest motivo opcional de cancelación.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// OrderFilterRequest filtros de listado. From/To en formato 2006-01-02.
type OrderFilterRequest struct {
	PageRequest
	Status   string `query:"status"`
	ClientID string `query:"clientId"`
	DriverID string `query:"driverId"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// TrackingEventResponse evento del historial.
type TrackingEventResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	Location  string    `json:"location,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// TrackingResponse estado actual (derivado del pedido) e historial.
type TrackingResponse struct {
	Status string                  `json:"status"`
	Events []TrackingEventResponse `json:"events"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID                  string              `json:"id"`
	OrderNumber         string              `json:"orderNumber"`
	ClientID            string              `json:"clientId"`
	ClientName          string              `json:"clientName,omitempty"`
	Items               []OrderItemResponse `json:"items"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	Tax                 decimal.Decimal     `json:"tax"`
	Discount            decimal.Decimal     `json:"discount"`
	Total               decimal.Decimal     `json:"total"`
	Status              string              `json:"status"`
	DeliveryAddress     string              `json:"deliveryAddress"`
	DeliveryDate        time.Time           `json:"deliveryDate"`
	DeliveryTime        string              `json:"deliveryTime,omitempty"`
	SpecialInstructions string              `json:"specialInstructions,omitempty"`
	DriverID            string              `json:"driverId,omitempty"`
	DriverName          string              `json:"driverName,omitempty"`
	Tracking            TrackingResponse    `json:"tracking"`
	CreatedBy           string              `json:"createdBy,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// OrderListResponse listado paginado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderEvent mensaje difundido por websocket ante cambios de un pedido.
type OrderEvent struct {
	Type        string    `json:"type"` // created, status, cancelled, driver-assigned, deleted
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
}

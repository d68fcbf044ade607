package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusInTransit = "in-transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order cabecera del pedido. Status es la única fuente de verdad del estado;
// el historial vive en Events (append-only).
type Order struct {
	ID                  string
	OrderNumber         string
	ClientID            string
	ClientName          string
	Items               []OrderItem
	Subtotal            decimal.Decimal
	Tax                 decimal.Decimal
	Discount            decimal.Decimal
	Total               decimal.Decimal
	Status              string
	DeliveryAddress     string
	DeliveryDate        time.Time
	DeliveryTime        string
	SpecialInstructions string
	DriverID            string
	DriverName          string
	Events              []TrackingEvent
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem línea del pedido. Total = UnitPrice × Quantity.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// TrackingEvent registro append-only de un cambio de estado.
type TrackingEvent struct {
	ID        string
	OrderID   string
	Status    string
	Timestamp time.Time
	Note      string
	Location  string
	UpdatedBy string
}

// LastEvent devuelve el evento más reciente (nil si no hay).
func (o *Order) LastEvent() *TrackingEvent {
	if len(o.Events) == 0 {
		return nil
	}
	return &o.Events[len(o.Events)-1]
}

// Package orders ciclo de vida de pedidos: creación con descuento de stock, cambios de estado,
// cancelación con reposición, asignación de repartidor y consultas.
package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/ordering"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// Config reglas configurables del ciclo de vida.
type Config struct {
	TaxRate           decimal.Decimal
	StrictTransitions bool
}

// Deps dependencias del caso de uso. Idempotency y Notifier son opcionales.
type Deps struct {
	Orders      repository.OrderRepository
	Products    repository.ProductRepository
	Clients     repository.ClientRepository
	Users       repository.UserRepository
	Tx          TxRunner
	Idempotency IdempotencyStore
	Notifier    Notifier
	Numbers     NumberGenerator
}

// UseCase casos de uso de pedidos.
type UseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	tx          TxRunner
	idem        IdempotencyStore
	notifier    Notifier
	numbers     NumberGenerator
	cfg         Config
	log         *logger.Logger
	now         func() time.Time
}

// DefaultConfig IVA 20% y transiciones estrictas.
func DefaultConfig() Config {
	return Config{TaxRate: ordering.DefaultTaxRate, StrictTransitions: true}
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps, cfg Config, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		orderRepo:   deps.Orders,
		productRepo: deps.Products,
		clientRepo:  deps.Clients,
		userRepo:    deps.Users,
		tx:          deps.Tx,
		idem:        deps.Idempotency,
		notifier:    deps.Notifier,
		numbers:     deps.Numbers,
		cfg:         cfg,
		log:         log.Component("orders"),
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj (pruebas).
func (uc *UseCase) SetClock(now func() time.Time) { uc.now = now }

func (uc *UseCase) publish(kind string, o *entity.Order) {
	if uc.notifier == nil || o == nil {
		return
	}
	uc.notifier.Publish(dto.OrderEvent{
		Type:        kind,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		At:          uc.now(),
	})
}

// ToOrderResponse convierte el pedido en DTO. tracking.status se deriva de Status.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return &dto.OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		ClientID:            o.ClientID,
		ClientName:          o.ClientName,
		Items:               items,
		Subtotal:            o.Subtotal,
		Tax:                 o.Tax,
		Discount:            o.Discount,
		Total:               o.Total,
		Status:              o.Status,
		DeliveryAddress:     o.DeliveryAddress,
		DeliveryDate:        o.DeliveryDate,
		DeliveryTime:        o.DeliveryTime,
		SpecialInstructions: o.SpecialInstructions,
		DriverID:            o.DriverID,
		DriverName:          o.DriverName,
		Tracking:            toTracking(o),
		CreatedBy:           o.CreatedBy,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func toTracking(o *entity.Order) dto.TrackingResponse {
	events := make([]dto.TrackingEventResponse, 0, len(o.Events))
	for _, ev := range o.Events {
		events = append(events, dto.TrackingEventResponse{
			Status:    ev.Status,
			Timestamp: ev.Timestamp,
			Note:      ev.Note,
			Location:  ev.Location,
			UpdatedBy: ev.UpdatedBy,
		})
	}
	return dto.TrackingResponse{Status: o.Status, Events: events}
}

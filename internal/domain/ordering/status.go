package ordering

import (
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// transitions estados sucesores legales. delivered y cancelled son terminales.
var transitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusPreparing, entity.OrderStatusCancelled},
	entity.OrderStatusPreparing: {entity.OrderStatusReady, entity.OrderStatusCancelled},
	entity.OrderStatusReady:     {entity.OrderStatusInTransit, entity.OrderStatusCancelled},
	entity.OrderStatusInTransit: {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered: nil,
	entity.OrderStatusCancelled: nil,
}

// IsKnownStatus indica si el estado pertenece al ciclo de vida del pedido.
func IsKnownStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition indica si from -> to está en la tabla.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition valida el cambio de estado.
// En modo estricto solo se aceptan transiciones de la tabla. En modo permisivo se acepta
// cualquier valor no vacío, salvo salir de cancelled (el stock ya fue devuelto).
func ValidateTransition(from, to string, strict bool) error {
	if to == "" {
		return domain.ErrInvalidInput
	}
	if from == entity.OrderStatusCancelled {
		return domain.ErrOrderCancelled
	}
	if !strict {
		return nil
	}
	if !CanTransition(from, to) {
		return &domain.TransitionError{Entity: "order", From: from, To: to}
	}
	return nil
}

// CanCancel aplica la única regla fija de cancelación: no se cancela lo entregado ni lo ya cancelado.
func CanCancel(status string) error {
	switch status {
	case entity.OrderStatusDelivered:
		return domain.ErrOrderDelivered
	case entity.OrderStatusCancelled:
		return domain.ErrOrderCancelled
	}
	return nil
}

// IsEditable indica si aún se pueden cambiar datos de entrega y descuento.
func IsEditable(status string) bool {
	return status == entity.OrderStatusPending || status == entity.OrderStatusConfirmed
}

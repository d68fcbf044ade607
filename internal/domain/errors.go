package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrOrderDelivered      = errors.New("el pedido ya fue entregado")
	ErrOrderCancelled      = errors.New("el pedido ya está cancelado")
	ErrIdempotencyInFlight = errors.New("ya hay una petición en curso con la misma llave de idempotencia")
	ErrModuleDisabled      = errors.New("módulo no disponible")
)

// TransitionError detalla una transición rechazada por la máquina de estados.
// errors.Is(err, ErrInvalidTransition) es verdadero.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: transición de estado no permitida: %q -> %q", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

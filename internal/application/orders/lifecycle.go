package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/ordering"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return order, nil
}

// UpdateStatus cambia el estado y agrega el evento de seguimiento en la misma transacción.
// "cancelled" se delega a CancelOrder para reponer el stock.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, userID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	to := strings.TrimSpace(in.Status)
	if to == entity.OrderStatusCancelled {
		return uc.CancelOrder(ctx, id, userID, dto.CancelOrderRequest{Reason: in.Note})
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ordering.ValidateTransition(order.Status, to, uc.cfg.StrictTransitions); err != nil {
		return nil, err
	}

	now := uc.now()
	ev := entity.TrackingEvent{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Status:    to,
		Timestamp: now,
		Note:      in.Note,
		Location:  in.Location,
		UpdatedBy: userID,
	}
	from := order.Status
	err = uc.tx.RunOrders(ctx, func(orderRepo repository.OrderRepository, _ repository.ProductRepository, _ repository.ClientRepository) error {
		ok, err := orderRepo.UpdateStatus(ctx, order.ID, from, to, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el pedido cambió de estado, reintente", domain.ErrConflict)
		}
		return orderRepo.AppendEvent(ctx, &ev)
	})
	if err != nil {
		return nil, err
	}

	order.Status = to
	order.Events = append(order.Events, ev)
	order.UpdatedAt = now
	uc.log.Info().Str("order_id", order.ID).Str("from", from).Str("to", to).Msg("estado de pedido actualizado")
	uc.publish("status", order)
	return ToOrderResponse(order), nil
}

// CancelOrder cancela y repone el stock de cada línea en una sola transacción.
// Rechaza pedidos entregados (ErrOrderDelivered) o ya cancelados (ErrOrderCancelled) sin mutar nada.
func (uc *UseCase) CancelOrder(ctx context.Context, id, userID string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ordering.CanCancel(order.Status); err != nil {
		return nil, err
	}

	now := uc.now()
	note := in.Reason
	if note == "" {
		note = "Order cancelled"
	}
	ev := entity.TrackingEvent{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Status:    entity.OrderStatusCancelled,
		Timestamp: now,
		Note:      note,
		UpdatedBy: userID,
	}
	from := order.Status
	err = uc.tx.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, _ repository.ClientRepository) error {
		ok, err := orderRepo.UpdateStatus(ctx, order.ID, from, entity.OrderStatusCancelled, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el pedido cambió de estado, reintente", domain.ErrConflict)
		}
		if err := orderRepo.AppendEvent(ctx, &ev); err != nil {
			return err
		}
		return uc.restoreStock(ctx, productRepo, order)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", order.ID).Msg("cancelar pedido: transacción revertida")
		return nil, err
	}

	order.Status = entity.OrderStatusCancelled
	order.Events = append(order.Events, ev)
	order.UpdatedAt = now
	uc.log.Info().Str("order_id", order.ID).Str("from", from).Msg("pedido cancelado")
	uc.publish("cancelled", order)
	return ToOrderResponse(order), nil
}

// restoreStock devuelve al inventario las cantidades del pedido. Un producto eliminado se omite.
func (uc *UseCase) restoreStock(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order) error {
	for _, it := range order.Items {
		applied, err := productRepo.AdjustStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if !applied {
			uc.log.Warn().
				Str("order_id", order.ID).
				Str("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("producto inexistente al reponer stock; se omite")
		}
	}
	return nil
}

// AssignDriver asigna repartidor. Si driverId es un usuario y no se envía nombre, se usa el del usuario.
func (uc *UseCase) AssignDriver(ctx context.Context, id string, in dto.AssignDriverRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.DriverName)
	if name == "" && uc.userRepo != nil {
		user, err := uc.userRepo.GetByID(ctx, in.DriverID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			name = user.Name
		}
	}
	now := uc.now()
	if err := uc.orderRepo.AssignDriver(ctx, order.ID, in.DriverID, name, now); err != nil {
		return nil, err
	}
	order.DriverID = in.DriverID
	order.DriverName = name
	order.UpdatedAt = now
	uc.publish("driver-assigned", order)
	return ToOrderResponse(order), nil
}

// UpdateOrder modifica entrega y descuento mientras el pedido esté pending/confirmed y recalcula el total.
func (uc *UseCase) UpdateOrder(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ordering.IsEditable(order.Status) {
		return nil, fmt.Errorf("%w: el pedido en estado %s no se puede editar", domain.ErrConflict, order.Status)
	}
	if in.DeliveryAddress != nil {
		order.DeliveryAddress = *in.DeliveryAddress
	}
	if in.DeliveryDate != nil {
		d, ok, err := dto.ParseDate(*in.DeliveryDate)
		if err != nil {
			return nil, err
		}
		if ok {
			order.DeliveryDate = d
		}
	}
	if in.DeliveryTime != nil {
		order.DeliveryTime = *in.DeliveryTime
	}
	if in.SpecialInstructions != nil {
		order.SpecialInstructions = *in.SpecialInstructions
	}
	discount := order.Discount
	if in.Discount != nil {
		discount = *in.Discount
	}
	lineTotals := make([]decimal.Decimal, 0, len(order.Items))
	for _, it := range order.Items {
		lineTotals = append(lineTotals, it.Total)
	}
	totals, err := ordering.CalculateTotals(lineTotals, uc.cfg.TaxRate, discount)
	if err != nil {
		return nil, err
	}
	order.Subtotal, order.Tax, order.Discount, order.Total = totals.Subtotal, totals.Tax, totals.Discount, totals.Total
	order.UpdatedAt = uc.now()
	if err := uc.orderRepo.UpdateDetails(ctx, order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// DeleteOrder elimina pedidos pending (reponiendo stock) o cancelled. Otros estados: ErrConflict.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	order, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	switch order.Status {
	case entity.OrderStatusPending:
		err = uc.tx.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, _ repository.ClientRepository) error {
			if err := uc.restoreStock(ctx, productRepo, order); err != nil {
				return err
			}
			return orderRepo.Delete(ctx, order.ID)
		})
	case entity.OrderStatusCancelled:
		err = uc.orderRepo.Delete(ctx, order.ID)
	default:
		return fmt.Errorf("%w: solo se eliminan pedidos pending o cancelled (estado %s)", domain.ErrConflict, order.Status)
	}
	if err != nil {
		return err
	}
	uc.publish("deleted", order)
	return nil
}

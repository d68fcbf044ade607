package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/ordering"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// NoteOrderCreated nota del evento inicial de seguimiento.
const NoteOrderCreated = "Order created"

// IdempotencyKey llave de idempotencia de creación de pedidos, acotada al usuario.
func IdempotencyKey(userID, key string) string {
	return "idem:order:" + userID + ":" + key
}

// CreateOrder crea el pedido. Con idempotencyKey, una repetición devuelve la respuesta original
// (replayed=true) sin volver a descontar stock.
func (uc *UseCase) CreateOrder(ctx context.Context, userID, idempotencyKey string, in dto.CreateOrderRequest) (resp *dto.OrderResponse, replayed bool, err error) {
	if idempotencyKey == "" || uc.idem == nil {
		resp, err = uc.createOrder(ctx, userID, in)
		return resp, false, err
	}

	key := IdempotencyKey(userID, idempotencyKey)
	unlock, err := uc.idem.Lock(ctx, key)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	payload, found, err := uc.idem.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("leer llave de idempotencia: %w", err)
	}
	if found {
		var stored dto.OrderResponse
		if err := json.Unmarshal(payload, &stored); err != nil {
			return nil, false, fmt.Errorf("decodificar respuesta guardada: %w", err)
		}
		return &stored, true, nil
	}

	resp, err = uc.createOrder(ctx, userID, in)
	if err != nil {
		return nil, false, err
	}
	payload, err = json.Marshal(resp)
	if err == nil {
		err = uc.idem.Save(ctx, key, payload)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", resp.ID).Msg("no se pudo guardar la respuesta idempotente")
	}
	return resp, false, nil
}

type orderLine struct {
	product  *entity.Product
	quantity int
}

func (uc *UseCase) createOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	deliveryDate, ok, err := dto.ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if !ok || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validaciones en orden, fallando en la primera: cliente, productos, stock.
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
	}

	lines, err := uc.resolveLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	orderID := uuid.New().String()
	items := make([]entity.OrderItem, 0, len(lines))
	lineTotals := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		total := ordering.LineTotal(l.product.UnitPrice, l.quantity)
		items = append(items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			Quantity:    l.quantity,
			UnitPrice:   l.product.UnitPrice,
			Total:       total,
		})
		lineTotals = append(lineTotals, total)
	}
	totals, err := ordering.CalculateTotals(lineTotals, uc.cfg.TaxRate, decimal.Zero)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:                  orderID,
		OrderNumber:         uc.numbers.Next("ORD"),
		ClientID:            client.ID,
		ClientName:          client.Name,
		Items:               items,
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		Discount:            totals.Discount,
		Total:               totals.Total,
		Status:              entity.OrderStatusPending,
		DeliveryAddress:     in.DeliveryAddress,
		DeliveryDate:        deliveryDate,
		DeliveryTime:        in.DeliveryTime,
		SpecialInstructions: in.SpecialInstructions,
		Events: []entity.TrackingEvent{{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Status:    entity.OrderStatusPending,
			Timestamp: now,
			Note:      NoteOrderCreated,
			UpdatedBy: userID,
		}},
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
	) error {
		// 1) Pedido con su evento inicial
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		// 2) Descuento condicional: si otro pedido consumió el stock entre la validación y aquí, rollback.
		for _, it := range order.Items {
			applied, err := productRepo.AdjustStock(ctx, it.ProductID, -it.Quantity)
			if err != nil {
				return err
			}
			if !applied {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, it.ProductName)
			}
		}
		// 3) Contadores del cliente
		return clientRepo.RecordOrder(ctx, client.ID, order.Total, now)
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("order_number", order.OrderNumber).
			Str("client_id", client.ID).
			Msg("crear pedido: transacción revertida")
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("total", order.Total.StringFixed(2)).
		Msg("pedido creado")
	uc.publish("created", order)
	return ToOrderResponse(order), nil
}

// maxLineQuantity tope de cantidad por producto; las columnas de cantidad son INTEGER.
const maxLineQuantity = math.MaxInt32

// resolveLines agrupa productos repetidos y valida existencia y stock.
func (uc *UseCase) resolveLines(ctx context.Context, reqItems []dto.OrderItemRequest) ([]orderLine, error) {
	index := make(map[string]int, len(reqItems))
	var merged []dto.OrderItemRequest
	for _, it := range reqItems {
		if it.ProductID == "" || it.Quantity <= 0 || it.Quantity > maxLineQuantity {
			return nil, fmt.Errorf("%w: línea con producto o cantidad inválidos", domain.ErrInvalidInput)
		}
		if i, ok := index[it.ProductID]; ok {
			if merged[i].Quantity > maxLineQuantity-it.Quantity {
				return nil, fmt.Errorf("%w: cantidad total de %s fuera de rango", domain.ErrInvalidInput, it.ProductID)
			}
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	lines := make([]orderLine, 0, len(merged))
	for _, it := range merged {
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: producto %s inactivo", domain.ErrInvalidInput, product.SKU)
		}
		lines = append(lines, orderLine{product: product, quantity: it.Quantity})
	}
	for _, l := range lines {
		if l.product.CurrentStock < l.quantity {
			return nil, fmt.Errorf("%w: %s disponible %d, solicitado %d",
				domain.ErrInsufficientStock, l.product.Name, l.product.CurrentStock, l.quantity)
		}
	}
	return lines, nil
}

package orders

import (
	"context"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de pedidos, productos y clientes.
// Si fn devuelve error se hace rollback de todas las escrituras.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// IdempotencyStore guarda la respuesta de la primera petición con una llave dada.
type IdempotencyStore interface {
	// Lock toma la llave en exclusiva; ErrIdempotencyInFlight si otra petición la tiene.
	Lock(ctx context.Context, key string) (unlock func(), err error)
	// Get devuelve la respuesta guardada (found=false si no existe).
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
}

// Notifier difunde eventos de pedidos (websocket). Puede ser nil.
type Notifier interface {
	Publish(ev dto.OrderEvent)
}

// NumberGenerator genera números de documento únicos con prefijo (ORD-, INV-, BATCH-).
type NumberGenerator interface {
	Next(prefix string) string
}

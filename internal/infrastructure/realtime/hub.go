// Package realtime difunde eventos de pedidos a los clientes conectados por websocket.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

const broadcastBuffer = 64

var _ orders.Notifier = (*Hub)(nil)

// Hub registro de conexiones y bucle de difusión. Run debe estar corriendo para que Publish entregue.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mu         sync.Mutex
	log        *logger.Logger
}

// NewHub crea el hub sin conexiones.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, broadcastBuffer),
		log:        log.Component("ws"),
	}
}

// Run atiende altas, bajas y difusiones hasta que ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register da de alta una conexión (bloquea hasta que Run la atiende).
func (h *Hub) Register(conn *websocket.Conn) { h.register <- conn }

// Unregister da de baja y cierra la conexión.
func (h *Hub) Unregister(conn *websocket.Conn) { h.unregister <- conn }

// ClientCount conexiones activas.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish no bloquea: si el buffer está lleno el evento se descarta y se registra.
func (h *Hub) Publish(ev dto.OrderEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("order_id", ev.OrderID).Msg("serializar evento ws")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("order_id", ev.OrderID).Str("type", ev.Type).Msg("buffer ws lleno, evento descartado")
	}
}

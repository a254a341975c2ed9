// Package realtime implementa el Broadcaster sobre WebSocket: un hub con
// fan-out best-effort hacia todos los dashboards conectados. Sin cola de
// replay: quien se conecta después de un emit se lo pierde y debe refrescar
// por la API.
package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/ports"
	"github.com/fabrica-erp/fabrica-api/pkg/logger"
)

var _ ports.Broadcaster = (*Hub)(nil)

// Envelope frame JSON que reciben los suscriptores.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// client una conexión suscrita. El canal send con su goroutine de escritura
// garantiza orden FIFO dentro de la conexión; si el buffer se llena (cliente
// lento o muerto) el hub lo desconecta en lugar de bloquear.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub estado central de suscriptores. Todo el estado mutable lo posee el run
// loop; registro, baja y difusión entran por canales, así no hay locks.
type Hub struct {
	log        *logger.Logger
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]struct{}
}

// NewHub construye el hub y arranca su run loop.
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		log:        log,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[*client]struct{}),
	}
	go h.run()
	return h
}

// Broadcast publica el evento a todos los suscriptores conectados.
// Fire-and-forget: nunca bloquea ni devuelve error al caller; un fallo de
// serialización o un hub saturado se registra y se descarta.
func (h *Hub) Broadcast(event string, payload any) {
	frame, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("realtime: serializar evento")
		return
	}
	select {
	case h.broadcast <- frame:
	default:
		h.log.Warn().Str("event", event).Msg("realtime: hub saturado, evento descartado")
	}
}

// Handler devuelve el handler Fiber que suscribe la conexión entrante.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{conn: conn, send: make(chan []byte, 64)}
		h.register <- c

		go c.writePump()

		// Lectura solo para detectar la desconexión; los mensajes
		// entrantes se ignoran (el canal es de bajada).
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.unregister <- c
	})
}

// Upgrade middleware que exige el upgrade a WebSocket en la ruta.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Int("clients", len(h.clients)).Msg("realtime: suscriptor conectado")
		case c := <-h.unregister:
			h.drop(c)
		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Cliente que no drena: se desconecta para no
					// frenar al resto.
					h.drop(c)
				}
			}
		}
	}
}

// drop saca al cliente del hub y cierra su canal (termina el writePump).
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Debug().Int("clients", len(h.clients)).Msg("realtime: suscriptor desconectado")
}

// writePump escribe en orden de emisión hasta que el canal se cierra.
func (c *client) writePump() {
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}

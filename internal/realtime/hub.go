package realtime

import (
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const writeDeadline = 5 * time.Second

// Envelope is the wire format pushed to websocket clients.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan Envelope
}

// Hub fans events out to every connected websocket client. There is no
// per-client addressing: each broadcast reaches everyone. Sends are
// non-blocking; a client whose buffer is full is dropped rather than
// awaited, so a slow consumer can never stall a request.
type Hub struct {
	logger     *zap.Logger
	sendBuffer int

	register   chan *client
	unregister chan *client
	broadcast  chan Envelope
}

// NewHub creates the hub. Run must be started for connections to work.
func NewHub(logger *zap.Logger, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return &Hub{
		logger:     logger,
		sendBuffer: sendBuffer,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Envelope, 64),
	}
}

// Run owns the client set; all membership changes and fan-out happen here.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*client]struct{})
	for {
		select {
		case <-ctx.Done():
			for c := range clients {
				close(c.send)
			}
			return

		case c := <-h.register:
			clients[c] = struct{}{}
			h.logger.Debug("realtime client connected", zap.Int("clients", len(clients)))

		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
			h.logger.Debug("realtime client disconnected", zap.Int("clients", len(clients)))

		case env := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- env:
				default:
					delete(clients, c)
					close(c.send)
					h.logger.Warn("dropping slow realtime client")
				}
			}
		}
	}
}

// Broadcast implements Broadcaster. Never blocks the caller: when the hub
// loop is saturated the event is discarded, which the fan-out contract
// permits.
func (h *Hub) Broadcast(event string, payload any) {
	env := Envelope{Event: event, Payload: payload}
	select {
	case h.broadcast <- env:
	default:
		h.logger.Warn("realtime broadcast buffer full, event dropped", zap.String("event", event))
	}
}

// Handler upgrades the connection and pumps events until the peer leaves.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		c := &client{conn: conn, send: make(chan Envelope, h.sendBuffer)}
		h.register <- c

		done := make(chan struct{})
		go func() {
			defer close(done)
			for env := range c.send {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(env); err != nil {
					return
				}
			}
		}()

		// Reads are discarded; the loop exists to notice the peer closing.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.unregister <- c
		<-done
		_ = conn.Close()
	}
}

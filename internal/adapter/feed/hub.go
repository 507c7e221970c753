// Package feed streams world events to websocket subscribers.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"

	"nationsim/internal/domain/nation"
)

const (
	writeWait     = 5 * time.Second
	clientBacklog = 64
	pingInterval  = 30 * time.Second
)

// Hub fans world events out to connected subscribers. Publish never blocks:
// a subscriber that cannot keep up with its backlog is dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.HertzUpgrader
}

type client struct {
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients: map[*client]struct{}{},
		upgrader: websocket.HertzUpgrader{
			CheckOrigin: func(ctx *app.RequestContext) bool { return true },
		},
	}
}

// Publish queues the event for every subscriber.
func (h *Hub) Publish(evt nation.WorldEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("feed marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Subscribers reports the current connection count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve upgrades the request and streams events until the peer disconnects.
func (h *Hub) Serve(ctx context.Context, c *app.RequestContext) error {
	return h.upgrader.Upgrade(c, func(conn *websocket.Conn) {
		cl := &client{send: make(chan []byte, clientBacklog)}
		h.register(cl)
		defer h.unregister(cl)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(pingInterval)
		defer ping.Stop()
		for {
			select {
			case payload, open := <-cl.send:
				if !open {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	})
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

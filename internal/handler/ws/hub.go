package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	applogger "MarketPulse/pkg/logger"
)

// Hub fans market events out to every connected websocket client. It doubles
// as an EventPublisher so the usecases stay unaware of the transport.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	logger *applogger.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

var _ drepo.EventPublisher = (*Hub)(nil)

// NewHub creates a hub; call Run on its own goroutine before serving clients.
func NewHub(l *applogger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     l,
		done:       make(chan struct{}),
	}
}

// Run owns the client set. It exits when Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client connected", applogger.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Publish broadcasts the event to all connected clients. Events are dropped
// when the broadcast buffer is full; the stream is best-effort.
func (h *Hub) Publish(_ context.Context, ev *models.MarketEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return fmt.Errorf("hub closed")
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping event", applogger.String("type", string(ev.Type)))
	}
	return nil
}

// Close stops the hub and disconnects all clients.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		close(h.done)
	}
	return nil
}

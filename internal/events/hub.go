package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
	publishBuffer  = 256
)

// ErrHubStopped is returned by ServeWS once Run has returned
var ErrHubStopped = errors.New("event hub stopped")

// Client is one websocket subscriber of a project
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	projectID string
}

// Hub tracks subscribers per project and broadcasts events to them
type Hub struct {
	clients   map[string]map[*Client]bool
	clientsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	done chan struct{}

	upgrader websocket.Upgrader
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewHub creates a hub. checkOrigin may be nil to accept any origin.
func NewHub(logger *zap.Logger, m *metrics.Metrics, checkOrigin func(r *http.Request) bool) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, publishBuffer),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger:  logger,
		metrics: m,
	}
}

// Run processes registrations and broadcasts until ctx is done.
// It must be called exactly once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.projectID] == nil {
				h.clients[client.projectID] = make(map[*Client]bool)
			}
			h.clients[client.projectID][client] = true
			h.clientsMu.Unlock()
			h.reportSubscribers()

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Publish queues the event without blocking; it is dropped when the queue is full
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("Event queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("project_id", event.ProjectID),
		)
	}
}

// Subscribers returns the number of clients watching the project
func (h *Hub) Subscribers(projectID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[projectID])
}

// ServeWS upgrades the request and subscribes the connection to projectID
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, projectID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		projectID: projectID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return ErrHubStopped
	}

	go client.writePump()
	go client.readPump()
	return nil
}

func (h *Hub) deliver(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", zap.Error(err))
		return
	}

	var slow []*Client
	h.clientsMu.RLock()
	for client := range h.clients[event.ProjectID] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.clientsMu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Dropping slow event subscriber", zap.String("project_id", client.projectID))
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.clientsMu.Lock()
	if subs, ok := h.clients[client.projectID]; ok {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			close(client.send)
			if len(subs) == 0 {
				delete(h.clients, client.projectID)
			}
		}
	}
	h.clientsMu.Unlock()
	h.reportSubscribers()
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	for projectID, subs := range h.clients {
		for client := range subs {
			close(client.send)
		}
		delete(h.clients, projectID)
	}
	h.clientsMu.Unlock()
	h.reportSubscribers()
}

func (h *Hub) reportSubscribers() {
	if h.metrics == nil {
		return
	}
	h.clientsMu.RLock()
	total := 0
	for _, subs := range h.clients {
		total += len(subs)
	}
	h.clientsMu.RUnlock()
	h.metrics.SetEventSubscribers(total)
}

// readPump discards client messages and keeps the read deadline fresh.
// It unregisters the client when the connection closes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("Event subscriber read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

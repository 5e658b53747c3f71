// Package ws fans order events out to connected customers. Delivery is
// at-most-once: a slow or absent customer drops messages, never blocks the
// consumer.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"foodcourt-ordering/notify-svc/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are the gateway's job.
		return true
	},
}

type Client struct {
	customerID string
	conn       *websocket.Conn
	send       chan domain.OrderEvent
	hub        *Hub
	logger     *logrus.Logger
}

type Hub struct {
	clients    map[string]map[*Client]bool
	deliver    chan domain.OrderEvent
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		deliver:    make(chan domain.OrderEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.clients[client.customerID] == nil {
				h.clients[client.customerID] = make(map[*Client]bool)
			}
			h.clients[client.customerID][client] = true
			h.mutex.Unlock()
			h.logger.WithFields(logrus.Fields{
				"customer_id":  client.customerID,
				"client_count": h.ClientCount(),
			}).Info("Client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if set, ok := h.clients[client.customerID]; ok && set[client] {
				delete(set, client)
				if len(set) == 0 {
					delete(h.clients, client.customerID)
				}
				close(client.send)
			}
			h.mutex.Unlock()
			h.logger.WithFields(logrus.Fields{
				"customer_id":  client.customerID,
				"client_count": h.ClientCount(),
			}).Info("Client disconnected")

		case event := <-h.deliver:
			h.mutex.Lock()
			for client := range h.clients[event.CustomerID] {
				select {
				case client.send <- event:
				default:
					delete(h.clients[event.CustomerID], client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Deliver routes one event to every connection the customer holds. Drops when
// the hub's queue is full.
func (h *Hub) Deliver(event domain.OrderEvent) {
	select {
	case h.deliver <- event:
	default:
		h.logger.WithField("order_id", event.OrderID).Warn("Delivery channel full, dropping event")
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade to WebSocket")
		return
	}

	client := &Client{
		customerID: customerID,
		conn:       conn,
		send:       make(chan domain.OrderEvent, 64),
		hub:        h,
		logger:     h.logger,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Error("WebSocket error")
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				c.logger.WithError(err).Error("Failed to marshal event")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package hub рассылает обновления слоя риска подключенным WebSocket-клиентам.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Типы сообщений
const (
	MessageOverlay = "overlay"
	MessageDrift   = "risk_drift"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Message - конверт рассылки
type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotFunc возвращает сообщение, которое новый клиент получает сразу после подключения
type SnapshotFunc func() *Message

// Hub управляет подключениями и рассылкой
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logrus.Logger
	snapshot   SnapshotFunc
	onCount    func(int)
	sent       uint64
	done       chan struct{}
}

// Client - одно WebSocket-подключение
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub создает хаб; snapshot и onCount могут быть nil
func NewHub(logger *logrus.Logger, snapshot SnapshotFunc, onCount func(int)) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		snapshot:   snapshot,
		onCount:    onCount,
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию и рассылку до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Starting live overlay hub...")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("Stopping live overlay hub.")
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.reportCount(count)
			h.logger.WithField("clients", count).Debug("Live client connected")

			if h.snapshot != nil {
				if msg := h.snapshot(); msg != nil {
					if data, err := json.Marshal(msg); err == nil {
						h.deliver(client, data)
					}
				}
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mutex.Unlock()
			h.reportCount(count)
			h.logger.WithField("clients", count).Debug("Live client disconnected")

		case data := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				h.deliverLocked(client, data)
			}
			h.sent++
			count := len(h.clients)
			h.mutex.Unlock()
			h.reportCount(count)
		}
	}
}

// Broadcast ставит сообщение в очередь рассылки. Если очередь переполнена, сообщение отбрасывается.
func (h *Hub) Broadcast(msgType string, data any) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data, Timestamp: time.Now().UTC()})
	if err != nil {
		h.logger.WithError(err).WithField("type", msgType).Error("Failed to marshal broadcast message")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.WithField("type", msgType).Warn("Broadcast queue is full, dropping message")
	}
}

// Serve регистрирует подключение и запускает его насосы
func (h *Hub) Serve(conn *websocket.Conn) {
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Stats возвращает число клиентов и число выполненных рассылок
func (h *Hub) Stats() (int, uint64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients), h.sent
}

func (h *Hub) deliver(client *Client, data []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		h.deliverLocked(client, data)
	}
}

// deliverLocked отключает медленного клиента вместо блокировки рассылки
func (h *Hub) deliverLocked(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.reportCount(0)
}

func (h *Hub) reportCount(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// readPump читает входящие кадры только ради pong и обнаружения закрытия
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Warn("Live client read error")
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

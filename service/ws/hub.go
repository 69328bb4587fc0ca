package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/cmd/utils"
	"github.com/medicore-labs/hms-server/logger"
	"github.com/medicore-labs/hms-server/service/store"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	// Send is the only path to the connection; writePump is the single
	// writer, so handler goroutines never touch Conn directly.
	Send chan []byte
}

type Hub struct {
	clients  map[string]*Client // map userID to client
	mu       sync.RWMutex
	messages store.MessageStore
}

type WebSocketMessage struct {
	Type       string `json:"type"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Content    string `json:"content,omitempty"`
}

func NewHub(messages store.MessageStore) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		messages: messages,
	}
}

func (h *Hub) registerClient(userID string, conn *websocket.Conn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Hub:    h,
		Send:   make(chan []byte, 256),
	}
	if old, exists := h.clients[userID]; exists {
		close(old.Send)
	}
	h.clients[userID] = client
	return client
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, exists := h.clients[c.UserID]; exists && current == c {
		delete(h.clients, c.UserID)
		close(c.Send)
	}
}

func (h *Hub) GetClient(userID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, exists := h.clients[userID]
	return client, exists
}

// enqueue hands a payload to the receiver's writePump. The read lock keeps
// the Send channel open for the duration of the send; a receiver whose
// buffer is full is dropped for this payload rather than blocking the
// caller.
func (h *Hub) enqueue(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[userID]
	if !exists {
		return
	}
	select {
	case client.Send <- payload:
	default:
		logger.Log.Warn("websocket send buffer full, dropping payload", zap.String("user_id", userID))
	}
}

// NotifyMessage pushes a stored message to its receiver if they have an
// open connection. Offline receivers just pick it up over REST later.
func (h *Hub) NotifyMessage(message models.Message) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type":    "message",
		"message": message,
	})
	h.enqueue(message.ReceiverID, payload)
}

// writePump drains the Send channel onto the connection and keeps the peer
// alive with pings. It owns all writes to Conn.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Log.Warn("websocket write failed", zap.String("user_id", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessages() {
	defer func() {
		c.Hub.unregisterClient(c)
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("websocket read error", zap.String("user_id", c.UserID), zap.Error(err))
			}
			break
		}

		var wsMessage WebSocketMessage
		if err := json.Unmarshal(raw, &wsMessage); err != nil {
			logger.Log.Warn("invalid websocket payload", zap.Error(err))
			continue
		}

		switch wsMessage.Type {
		case "message":
			c.handleNewMessage(wsMessage)
		case "typing":
			c.handleTypingNotification(wsMessage)
		}
	}
}

func (c *Client) handleNewMessage(wsMessage WebSocketMessage) {
	message := models.Message{
		SenderID:   c.UserID,
		ReceiverID: wsMessage.ReceiverID,
		Content:    wsMessage.Content,
		Timestamp:  time.Now(),
	}

	if err := c.Hub.messages.Create(context.Background(), &message); err != nil {
		logger.Log.Error("saving websocket message", zap.Error(err))
		return
	}

	c.Hub.NotifyMessage(message)
}

func (c *Client) handleTypingNotification(wsMessage WebSocketMessage) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type":      "typing",
		"sender_id": c.UserID,
	})
	c.Hub.enqueue(wsMessage.ReceiverID, payload)
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws", utils.AuthMiddleware(h.HandleWebSocket))
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := h.hub.registerClient(userID, conn)
	go client.writePump()
	go client.handleMessages()
}

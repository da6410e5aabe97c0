package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"levelup/middleware"
	"levelup/models"
)

// Manager fans dashboard events out to connected staff clients. Admins see
// everything; agent/reference clients only see events for their own
// reference label.
type Manager struct {
	clients    map[*Client]bool
	broadcast  chan event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type Client struct {
	conn           *websocket.Conn
	userID         string
	role           string
	referenceLabel string
	send           chan []byte
	manager        *Manager
}

// event pairs a serialized message with the reference label it concerns.
// Unattributed events (empty reference) only reach admin clients.
type event struct {
	reference string
	payload   []byte
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			log.Printf("✅ WebSocket client registered (%s). Total clients: %d", client.role, len(m.clients))

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			log.Printf("❌ WebSocket client unregistered. Total clients: %d", len(m.clients))

		case ev := <-m.broadcast:
			m.mu.Lock()
			for client := range m.clients {
				if !ShouldReceive(client.role, client.referenceLabel, ev.reference) {
					continue
				}
				select {
				case client.send <- ev.payload:
				default:
					close(client.send)
					delete(m.clients, client)
				}
			}
			m.mu.Unlock()
		}
	}
}

// ShouldReceive decides whether a client with the given role and reference
// label gets an event about an applicant attributed to appReference.
func ShouldReceive(role, label, appReference string) bool {
	if role == models.RoleAdmin {
		return true
	}
	if appReference == "" {
		return false
	}
	return label == appReference
}

// BroadcastNewApplication notifies dashboards of a fresh submission.
func (m *Manager) BroadcastNewApplication(app models.Applicant) {
	m.send("new_application", app.Reference, app)
}

// BroadcastApplicationUpdated notifies dashboards of a field mutation.
func (m *Manager) BroadcastApplicationUpdated(app models.Applicant) {
	m.send("application_updated", app.Reference, app)
}

// BroadcastApplicationDeleted notifies dashboards of an admin delete.
func (m *Manager) BroadcastApplicationDeleted(id, reference string) {
	m.send("application_deleted", reference, map[string]interface{}{"id": id})
}

func (m *Manager) send(eventType, reference string, payload interface{}) {
	data := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}

	msg, err := json.Marshal(data)
	if err != nil {
		log.Printf("❌ Error marshaling WebSocket message: %v", err)
		return
	}

	m.broadcast <- event{reference: reference, payload: msg}
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func WebSocketHandler(manager *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			log.Printf("❌ WebSocket connection rejected: no token provided")
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		claims, err := middleware.ParseToken(token)
		if err != nil {
			log.Printf("❌ WebSocket connection rejected: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:           conn,
			userID:         claims.UserID,
			role:           claims.Role,
			referenceLabel: claims.ReferenceLabel,
			send:           make(chan []byte, 256),
			manager:        manager,
		}

		manager.register <- client

		// Send connection success message
		welcomeMsg := map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"userId":  claims.UserID,
				"role":    claims.Role,
				"message": "WebSocket connected successfully",
				"time":    time.Now().Unix(),
			},
		}
		msg, _ := json.Marshal(welcomeMsg)
		client.send <- msg

		// Start goroutines for this client
		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			log.Printf("❌ WebSocket message unmarshal error: %v", err)
			continue
		}

		switch data["type"] {
		case "ping":
			c.sendPong()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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

func (c *Client) sendPong() {
	response := map[string]interface{}{
		"type": "pong",
		"payload": map[string]interface{}{
			"time": time.Now().Unix(),
		},
	}

	msg, err := json.Marshal(response)
	if err != nil {
		log.Printf("❌ Error marshaling pong: %v", err)
		return
	}

	c.send <- msg
}

package services

import (
	"sync"
	"time"

	"diskwarden/internal/models"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// StreamMessage is the envelope sent over WebSocket
type StreamMessage struct {
	Type      string      `json:"type"` // "state", "alert", "error"
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// AlertTransition is the payload of an "alert" message
type AlertTransition struct {
	From models.AlertState `json:"from"`
	To   models.AlertState `json:"to"`
}

// ClientConnection represents a connected WebSocket subscriber
type ClientConnection struct {
	ID   string
	Conn *websocket.Conn
	Send chan StreamMessage
}

// StreamHub fans each new snapshot out to all connected subscribers and
// announces alert-state transitions as explicit messages.
type StreamHub struct {
	log        *logrus.Logger
	clients    map[string]*ClientConnection
	broadcast  chan StreamMessage
	register   chan *ClientConnection
	unregister chan string
	done       chan bool
	mu         sync.RWMutex

	lastAlert models.AlertState
	hasAlert  bool
}

var streamHub *StreamHub

// InitStreamHub initializes the process-wide hub and starts its event loop.
func InitStreamHub(log *logrus.Logger) *StreamHub {
	streamHub = &StreamHub{
		log:        log,
		clients:    make(map[string]*ClientConnection),
		broadcast:  make(chan StreamMessage, 256),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		done:       make(chan bool),
	}
	go streamHub.run()
	return streamHub
}

// GetStreamHub returns the hub, or nil before InitStreamHub.
func GetStreamHub() *StreamHub {
	return streamHub
}

func (h *StreamHub) run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Infof("stream client connected: %s (total: %d)", client.ID, total)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Infof("stream client disconnected: %s (total: %d)", clientID, total)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Slow subscriber, drop the message rather than stall.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastState pushes a snapshot to all subscribers. An ok <-> low_space
// transition additionally gets its own "alert" message, so consumers that
// only care about the alert don't have to diff snapshots. Wire it up with
// Monitor.OnUpdate.
func (h *StreamHub) BroadcastState(st models.LocalState) {
	if h.hasAlert && h.lastAlert != st.StorageSpaceAlert {
		h.enqueue(StreamMessage{
			Type:      "alert",
			Timestamp: time.Now(),
			Data:      AlertTransition{From: h.lastAlert, To: st.StorageSpaceAlert},
		})
	}
	h.lastAlert = st.StorageSpaceAlert
	h.hasAlert = true

	h.enqueue(StreamMessage{
		Type:      "state",
		Timestamp: time.Now(),
		Data:      st,
	})
}

func (h *StreamHub) enqueue(msg StreamMessage) {
	select {
	case h.broadcast <- msg:
	default:
		// Broadcast queue full, skip.
	}
}

// Register adds a new subscriber to the hub.
func (h *StreamHub) Register(client *ClientConnection) {
	h.register <- client
}

// Unregister removes a subscriber from the hub.
func (h *StreamHub) Unregister(clientID string) {
	h.unregister <- clientID
}

// Stop shuts down the hub's event loop.
func (h *StreamHub) Stop() {
	h.done <- true
}

package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 32
)

// Credentials arrive in the token query parameter, never in cookies, so
// cross-origin upgrades carry no ambient authority.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is pushed to every open connection of the owning user.
type Event struct {
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans token lifecycle events out to a user's websocket sessions.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
	log         zerolog.Logger
	now         func() time.Time
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*connection]struct{}),
		log:         log,
		now:         time.Now,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.connections, c.userID)
	}
}

// Publish never blocks: a client whose buffer is full misses the event.
func (h *Hub) Publish(userID, eventType string, payload any) {
	data, err := json.Marshal(&Event{Type: eventType, At: h.now().UTC(), Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("type", eventType).Msg("encode event failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[userID] {
		select {
		case c.send <- data:
		default:
			h.log.Warn().Str("user_id", userID).Str("type", eventType).Msg("event dropped for slow client")
		}
	}
}

// Connections returns the number of open sessions for a user.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.connections {
		for c := range set {
			close(c.send)
		}
		delete(h.connections, userID)
	}
}

// ServeWS registers conn and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, userID string) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only services control frames; clients have nothing to say.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

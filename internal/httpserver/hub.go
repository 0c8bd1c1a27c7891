package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	RegionSnapshot = "snapshot"

	writeWait  = 5 * time.Second
	sendBuffer = 64
)

type Message struct {
	Region string `json:"region"`
	Data   any    `json:"data"`
}

// Hub fans region changes out to websocket viewers. Publish never blocks: a
// viewer whose buffer is full misses the message.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool

	log zerolog.Logger
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[*wsClient]struct{}),
		log:     log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) Publish(region string, data any) {
	msg, err := json.Marshal(Message{Region: region, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("region", region).Msg("encode region update")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("region", region).Str("remote", c.conn.RemoteAddr().String()).Msg("viewer too slow, update dropped")
		}
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve upgrades the request and streams updates until the viewer leaves.
// first is sent before any update.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, first Message) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	msg, err := json.Marshal(first)
	if err != nil {
		h.log.Error().Err(err).Msg("encode first message")
		conn.Close()
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
	c.send <- msg

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("viewer connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *wsClient) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("websocket write failed")
			c.conn.Close()
			h.remove(c)
			return
		}
	}
}

// readLoop only watches for the viewer going away.
func (h *Hub) readLoop(c *wsClient) {
	defer func() {
		c.conn.Close()
		h.remove(c)
		h.log.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("viewer disconnected")
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every viewer. Hijacked connections are not covered by
// http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(writeWait)
	for _, c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "dashboard stopping"), deadline)
		c.conn.Close()
	}
}

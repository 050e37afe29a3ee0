package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	htm "github.com/htm-community/htmseq"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Size of client send buffer.
	sendBufferSize = 256
)

// Event types for WebSocket messages
const (
	EventTypeTick  = "tick"
	EventTypeReset = "reset"
	EventTypePing  = "ping"
	EventTypePong  = "pong"
	EventTypeError = "error"
)

// WSMessage is the standard WebSocket message envelope.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// TickData is sent after every compute.
type TickData struct {
	RunID            string            `json:"runId"`
	Iteration        int               `json:"iteration"`
	Symbol           string            `json:"symbol"`
	ActiveColumns    []int             `json:"activeColumns"`
	PredictedColumns []int             `json:"predictedColumns"`
	BurstingColumns  int               `json:"burstingColumns"`
	PredictedSymbol  string            `json:"predictedSymbol,omitempty"`
	Confidence       float64           `json:"confidence"`
	ActiveCells      []htm.SparseEntry `json:"activeCells"`
	PredictiveCells  []htm.SparseEntry `json:"predictiveCells"`
}

// ResetData is sent on a sequence boundary.
type ResetData struct {
	RunID     string `json:"runId"`
	Iteration int    `json:"iteration"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// visualizers are served from anywhere
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump reads until the connection fails, answering pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			break
		}
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg WSMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.queue(&WSMessage{Type: EventTypeError, Data: map[string]string{
			"code":    "invalid_json",
			"message": "Failed to parse message",
		}})
		return
	}

	switch msg.Type {
	case EventTypePing:
		c.queue(&WSMessage{Type: EventTypePong})
	default:
		log.Printf("[ws] unknown message type: %s", msg.Type)
	}
}

// queue sends msg to this client only, dropping it when the buffer is full.
func (c *Client) queue(msg *WSMessage) {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// writePump writes queued messages and pings. One frame per message.
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
				// The hub closed the channel.
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

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// mu protects the clients map
	mu sync.RWMutex

	done chan struct{}
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[ws] client connected (total: %d)", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[ws] client disconnected (total: %d)", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow client
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg *WSMessage) error {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- data:
	default:
		// Buffer full, drop message
	}
	return nil
}

// BroadcastTick sends a tick event.
func (h *Hub) BroadcastTick(runID string, res tickResult) error {
	return h.Broadcast(&WSMessage{
		Type: EventTypeTick,
		Data: &TickData{
			RunID:            runID,
			Iteration:        res.Iteration,
			Symbol:           res.Symbol,
			ActiveColumns:    res.Active,
			PredictedColumns: res.Predicted,
			BurstingColumns:  res.Bursting,
			PredictedSymbol:  res.PredictedSymbol,
			Confidence:       res.Confidence,
			ActiveCells:      res.ActiveCells,
			PredictiveCells:  res.PredictiveCells,
		},
	})
}

// BroadcastReset sends a reset event.
func (h *Hub) BroadcastReset(runID string, iteration int) error {
	return h.Broadcast(&WSMessage{
		Type: EventTypeReset,
		Data: &ResetData{RunID: runID, Iteration: iteration},
	})
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// serve runs an HTTP server exposing /ws until ctx is done.
func serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[ws] listening on %s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType identifies a progress event pushed to a generation's
// subscribers.
type MessageType string

const (
	MsgProgress MessageType = "progress" // progress note; the API handler sends one when the search starts, not one per placed or popped word
	MsgDone     MessageType = "done"     // search finished, carries the final score
	MsgFailed   MessageType = "failed"   // search could not produce a grid
	MsgError    MessageType = "error"
)

// Message is the envelope written to a generation's WebSocket subscribers.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ProgressPayload struct {
	Item interface{} `json:"item"` // free-form progress detail, e.g. "search started"
}

type DonePayload struct {
	Score int `json:"score"`
}

type FailedPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is a single subscriber to one generation job's progress feed.
type Client struct {
	JobID     string
	AccountID string
	conn      *websocket.Conn
	Send      chan []byte
}

// Hub fans out generation progress to subscribed WebSocket clients, one
// broadcast group per job ID.
type Hub struct {
	mutex    sync.RWMutex
	jobs     map[string]map[*Client]bool
	register chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		jobs:       make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.jobs[client.JobID] == nil {
				h.jobs[client.JobID] = make(map[*Client]bool)
			}
			h.jobs[client.JobID][client] = true
			h.mutex.Unlock()
			log.Printf("subscriber joined job %s", client.JobID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if clients, ok := h.jobs[client.JobID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.jobs, client.JobID)
					}
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast sends a progress event to every subscriber of jobID.
func (h *Hub) Broadcast(jobID string, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := Message{Type: msgType, Payload: data}
	msgData, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mutex.RLock()
	clients := h.jobs[jobID]
	h.mutex.RUnlock()

	for client := range clients {
		select {
		case client.Send <- msgData:
		default:
			// slow consumer, drop the message rather than block the search
		}
	}
}

// ServeWs upgrades an HTTP request to a WebSocket and registers a client
// subscribed to jobID's progress feed. It blocks until the connection
// closes, so callers run it as (or from) a goroutine.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, jobID, accountID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		JobID:     jobID,
		AccountID: accountID,
		conn:      conn,
		Send:      make(chan []byte, 32),
	}

	hub.register <- client

	go client.writePump()
	client.readPump(hub)
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
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
		case message, ok := <-c.Send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

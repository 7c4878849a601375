package api

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// NavEvent is pushed to every shell watching a viewer session whenever
// the session's machine accepts a transition
type NavEvent struct {
	SessionID string    `json:"session_id"`
	From      int       `json:"from"`
	Index     int       `json:"index"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// SSEClient represents one connected shell
type SSEClient struct {
	SessionID string
	Channel   chan NavEvent
}

// SSEHub fans accepted navigation transitions out to connected shells
type SSEHub struct {
	clients    map[string]map[chan NavEvent]bool
	clientsMu  sync.RWMutex
	register   chan SSEClient
	unregister chan SSEClient
	broadcast  chan NavEvent
}

// NewSSEHub creates a hub and starts its dispatch loop
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[string]map[chan NavEvent]bool),
		register:   make(chan SSEClient, 10),
		unregister: make(chan SSEClient, 10),
		broadcast:  make(chan NavEvent, 100),
	}

	go hub.run()
	return hub
}

func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[chan NavEvent]bool)
			}
			h.clients[client.SessionID][client.Channel] = true
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.SessionID]; exists {
				delete(clients, client.Channel)
				close(client.Channel)
				if len(clients) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for clientChan := range h.clients[event.SessionID] {
				select {
				case clientChan <- event:
				default:
					// Client channel is full, skip
					log.Printf("[SSE] Client channel full for session %s, skipping event", event.SessionID)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends a navigation event to all shells watching a session
func (h *SSEHub) Broadcast(event NavEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[SSE] Broadcast channel full, dropping event for session %s", event.SessionID)
	}
}

// HandleSSE streams navigation events for one session over Server-Sent Events
func (h *SSEHub) HandleSSE(c *gin.Context) {
	sessionID := c.Param("session")
	if sessionID == "" {
		c.JSON(400, gin.H{"error": "session id required"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientChan := make(chan NavEvent, 10)

	select {
	case h.register <- SSEClient{SessionID: sessionID, Channel: clientChan}:
	default:
		c.JSON(500, gin.H{"error": "SSE hub registration failed"})
		return
	}

	defer func() {
		select {
		case h.unregister <- SSEClient{SessionID: sessionID, Channel: clientChan}:
		default:
			// Hub overloaded; the dispatch loop will drop the dead channel
			// on its next full-buffer send.
		}
	}()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-clientChan:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent("nav", string(payload))
			return true

		case <-time.After(30 * time.Second):
			// Keep-alive ping.
			c.SSEvent("ping", `{"status":"alive"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}

// ClientCount returns the number of shells watching a session
func (h *SSEHub) ClientCount(sessionID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[sessionID])
}

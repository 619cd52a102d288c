package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans run-session state updates (countdown ticks, question changes,
// the final result) out to the preview clients watching each run.
type Hub struct {
	mu   sync.RWMutex
	runs map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		runs: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(runID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.runs[runID] == nil {
		h.runs[runID] = make(map[*websocket.Conn]bool)
	}
	h.runs[runID][conn] = true
	log.Printf("ws: client connected to run %s (total: %d)", runID, len(h.runs[runID]))
}

func (h *Hub) RemoveConnection(runID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.runs[runID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.runs, runID)
		}
		log.Printf("ws: client disconnected from run %s", runID)
	}
}

func (h *Hub) Broadcast(runID string, message WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.runs[runID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

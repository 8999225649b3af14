package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// RefreshSignal tells connected editors that server state moved past the
// revision they last saw: re-fetch the separata list and, if a separata is
// open, its items.
type RefreshSignal struct {
	Revision int64 `json:"revision"`
}

// SSEHub manages Server-Sent Events connections for refresh signals
type SSEHub struct {
	clients map[chan []byte]bool
	mu      sync.RWMutex
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[chan []byte]bool),
	}
}

// RegisterClient registers a new SSE client
func (h *SSEHub) RegisterClient() chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientChan := make(chan []byte, 10) // Buffer size 10
	h.clients[clientChan] = true

	logrus.Infof("SSE client registered (total clients: %d)", len(h.clients))
	return clientChan
}

// UnregisterClient unregisters an SSE client
func (h *SSEHub) UnregisterClient(clientChan chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[clientChan]; ok {
		delete(h.clients, clientChan)
		close(clientChan)
	}

	logrus.Infof("SSE client unregistered (remaining clients: %d)", len(h.clients))
}

// BroadcastRefresh broadcasts a refresh signal to all connected clients.
// Sends are non-blocking; a client that cannot keep up is skipped rather
// than allowed to stall the poller.
func (h *SSEHub) BroadcastRefresh(revision int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	payload, err := json.Marshal(RefreshSignal{Revision: revision})
	if err != nil {
		logrus.Errorf("Failed to marshal refresh signal: %v", err)
		return
	}
	message := fmt.Sprintf("event: refresh\ndata: %s\n\n", string(payload))

	for clientChan := range h.clients {
		select {
		case clientChan <- []byte(message):
		default:
			logrus.Warn("SSE client channel full, skipping refresh signal")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *SSEHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/xelth-com/eckslotgo/internal/provisioning"
)

// MessageProvisionProgress is the type of provisioning progress messages
const MessageProvisionProgress = "PROVISION_PROGRESS"

// ProgressMessage is pushed to every client while a cell is provisioned
type ProgressMessage struct {
	Type string `json:"type"`
	provisioning.Progress
}

// envelope is a queued message; cell 0 goes to every client
type envelope struct {
	cell int
	data []byte
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients: ClientID -> Client
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

var _ provisioning.ProgressReporter = (*Hub)(nil)

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, sendBuffer),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop; it returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ClientID] = client
			h.mu.Unlock()
			log.Printf("🔌 WS client connected: %s", client.ClientID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ClientID]; ok {
				delete(h.clients, client.ClientID)
				close(client.send)
				log.Printf("📴 WS client disconnected: %s", client.ClientID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				if !client.Watches(message.cell) {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					// slow consumer, drop it
					delete(h.clients, id)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// ClientCount is the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues message for every connected client. It never blocks;
// messages are dropped when the queue is full.
func (h *Hub) Broadcast(message interface{}) bool {
	return h.publish(0, message)
}

// BroadcastCell queues message for clients watching cell
func (h *Hub) BroadcastCell(cell int, message interface{}) bool {
	return h.publish(cell, message)
}

func (h *Hub) publish(cell int, message interface{}) bool {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return false
	}

	select {
	case h.broadcast <- envelope{cell: cell, data: data}:
		return true
	default:
		log.Printf("⚠️  WS broadcast queue full, dropping message")
		return false
	}
}

// Report publishes provisioning progress to clients watching the cell
func (h *Hub) Report(p provisioning.Progress) {
	h.BroadcastCell(p.CellNumber, ProgressMessage{Type: MessageProvisionProgress, Progress: p})
}

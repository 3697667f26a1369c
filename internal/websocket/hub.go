package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"notedeck-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// refreshSignal tells a connected client its derived views are stale and
// should be re-fetched.
type refreshSignal struct {
	Type   string    `json:"type"`   // always "notes_refresh"
	Change string    `json:"change"` // NOTE_CREATED | NOTE_UPDATED | NOTE_DELETED
	NoteId uuid.UUID `json:"note_id"`
}

type Hub struct {
	// Registered clients map: OwnerID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OwnerID] = append(h.clients[client.OwnerID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"owner_id": client.OwnerID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OwnerID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OwnerID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OwnerID]) == 0 {
					delete(h.clients, client.OwnerID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyRefresh pushes a refresh signal to every connection the owner has,
// locally and (via Redis) on other instances.
func (h *Hub) NotifyRefresh(ownerID uuid.UUID, change string, noteID uuid.UUID) {
	data, _ := json.Marshal(refreshSignal{
		Type:   "notes_refresh",
		Change: change,
		NoteId: noteID,
	})

	h.mu.RLock()
	clients, localFound := h.clients[ownerID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Stalled client: hand it to the unregister path, which is
				// the only closer of Send.
				h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"owner_id": ownerID})
				h.unregister <- client
			}
		}
	}

	// Publish for other instances (multi-device across nodes)
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_owner_id": ownerID.String(),
			"message":         data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message arrives,
	// deliver it if the target owner has local connections.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetOwnerID string          `json:"target_owner_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		oid, err := uuid.Parse(payload.TargetOwnerID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[oid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

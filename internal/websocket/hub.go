package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"notesync-be/internal/dto"
	"notesync-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans the latest note snapshot out to every connected client. Each
// client only ever needs the most recent snapshot, so the per-client
// buffer holds exactly one payload and a newer snapshot replaces an
// undelivered older one (always replace, never queue).
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map / snapshot access
	mu sync.RWMutex

	// Most recently delivered snapshot, replayed to late joiners.
	lastSnapshot []byte

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// This instance's identity, so mirrored payloads are not re-applied
	// by their origin.
	instanceId string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		instanceId: uuid.NewString(),
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
			h.clients[client] = true
			if h.lastSnapshot != nil {
				client.push(h.lastSnapshot)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": h.clientCount()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": h.clientCount()})
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastSnapshot sends the given snapshot to all local clients and
// mirrors it to other instances through Redis.
func (h *Hub) BroadcastSnapshot(notes []*dto.NoteResponse) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "notes_snapshot",
		"data": notes,
	})
	if err != nil {
		h.logger.Error("Hub", "Snapshot serialization failed", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceId,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "note_snapshots", payload)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	// Pushes happen under the lock: unregister closes Send under the same
	// lock, so a push can never hit a closed channel.
	h.mu.Lock()
	h.lastSnapshot = data
	for client := range h.clients {
		client.push(data)
	}
	h.mu.Unlock()
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "note_snapshots")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		h.applyMirror([]byte(msg.Payload))
	}
}

// applyMirror delivers one snapshot mirrored from another instance,
// dropping payloads that originated here.
func (h *Hub) applyMirror(raw []byte) {
	var payload struct {
		Origin  string          `json:"origin"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return
	}
	if payload.Origin == h.instanceId {
		// Our own mirror coming back; local clients already have it.
		return
	}
	h.deliverLocal(payload.Message)
}

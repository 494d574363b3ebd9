package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Event is what an editing session pushes to its listeners after an applied
// edit or a live preview.
type Event struct {
	Type        string  `json:"type"`
	SessionID   string  `json:"session_id"`
	Label       string  `json:"label,omitempty"`
	Points      int     `json:"points"`
	TrackLength float64 `json:"track_length_m"`
	Problems    int     `json:"problems"`
}

type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	SessionID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionClients, ok := h.clients[client.SessionID]; ok {
		delete(sessionClients, client)
		if len(sessionClients) == 0 {
			delete(h.clients, client.SessionID)
		}
	}
	close(client.Send)
}

// Broadcast fans a payload out to every listener of a session. With redis
// configured it goes through pub/sub so listeners on other instances see it
// too; the local delivery then happens in subscribeRedis.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
		return
	}
	h.deliver(sessionID, payload)
}

func (h *Hub) BroadcastEvent(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	h.Broadcast(ev.SessionID, payload)
}

func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[sessionID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "editor:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(sessionIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(sessionID string) string {
	return "editor:" + sessionID + ":events"
}

func sessionIDFromChannel(ch string) string {
	// editor:{session}:events
	const prefix = "editor:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}

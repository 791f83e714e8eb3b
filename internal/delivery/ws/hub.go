package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

// Event is the envelope every pushed message travels in.
type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub tracks one live connection per user and doubles as the realtime
// notification pusher. A second connection for the same user replaces
// the first.
type Hub struct {
	mu       sync.RWMutex
	conns    map[uuid.UUID]*websocket.Conn
	userRepo repository.UserRepository
}

func NewHub(userRepo repository.UserRepository) *Hub {
	return &Hub{
		conns:    make(map[uuid.UUID]*websocket.Conn),
		userRepo: userRepo,
	}
}

// Register adopts a connection for userID and flips the user online.
func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	if existing, ok := h.conns[userID]; ok {
		existing.Close()
	}
	h.conns[userID] = conn
	h.mu.Unlock()

	log.Info().Str("user_id", userID.String()).Msg("websocket connected")
	h.setOnline(userID, true)
}

// Unregister drops the connection if it is still the current one.
func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	current, ok := h.conns[userID]
	if ok && current == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
	conn.Close()

	if ok && current == conn {
		log.Info().Str("user_id", userID.String()).Msg("websocket disconnected")
		h.setOnline(userID, false)
	}
}

// Push implements the notification pusher port. Delivery to an offline
// or broken connection is silently dropped. Writes happen under the hub
// lock: gorilla connections allow only one concurrent writer.
func (h *Hub) Push(userID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      event,
		Timestamp: time.Now().UnixMilli(),
		Data:      payload,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to encode ws event")
		return
	}

	h.mu.Lock()
	conn, ok := h.conns[userID]
	if !ok {
		h.mu.Unlock()
		return
	}
	writeErr := conn.WriteMessage(websocket.TextMessage, data)
	if writeErr != nil {
		delete(h.conns, userID)
	}
	h.mu.Unlock()

	if writeErr != nil {
		log.Warn().Err(writeErr).Str("user_id", userID.String()).Msg("ws write failed, dropping connection")
		conn.Close()
		h.setOnline(userID, false)
	}
}

// IsOnline reports whether the user has a live connection.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) setOnline(userID uuid.UUID, online bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.userRepo.SetOnline(ctx, userID, online); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update online status")
	}
}

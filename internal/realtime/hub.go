// Package realtime fans out events to connected clients grouped in rooms.
package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// subscriberBuffer is the per-subscriber queue length. Events published to a
// full queue are dropped for that subscriber.
const subscriberBuffer = 32

// Event is a message delivered to a room
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// UserRoom is the room that carries a single user's events.
func UserRoom(userID string) string {
	return "user_" + userID
}

// Subscription receives the events of one room until it is closed
type Subscription struct {
	room   string
	events chan Event
	hub    *Hub
	once   sync.Once
}

// Events returns the channel of delivered events. It is closed on Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Room returns the subscribed room.
func (s *Subscription) Room() string {
	return s.room
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub routes events to room subscribers. Publishing never blocks.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Subscription]struct{}
	dropped atomic.Int64
	logger  *zap.Logger
	now     func() time.Time
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:  make(map[string]map[*Subscription]struct{}),
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe joins a room.
func (h *Hub) Subscribe(room string) *Subscription {
	sub := &Subscription{room: room, events: make(chan Event, subscriberBuffer), hub: h}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Subscription]struct{})
	}
	h.rooms[room][sub] = struct{}{}
	h.logger.Debug("subscriber joined", zap.String("room", room), zap.Int("subscribers", len(h.rooms[room])))
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.rooms[sub.room]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.rooms, sub.room)
		}
	}
	close(sub.events)
}

// Publish sends an event to every subscriber of a room and returns how many
// received it.
func (h *Hub) Publish(room, eventType string, data any) int {
	event := Event{Type: eventType, Data: data, Timestamp: h.now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for sub := range h.rooms[room] {
		select {
		case sub.events <- event:
			delivered++
		default:
			h.dropped.Add(1)
			h.logger.Warn("subscriber queue full, event dropped",
				zap.String("room", room),
				zap.String("event", eventType),
			)
		}
	}
	return delivered
}

// PublishToUser sends an event to a user's room.
func (h *Hub) PublishToUser(userID, eventType string, data any) {
	h.Publish(UserRoom(userID), eventType, data)
}

// Subscribers returns the number of subscribers in a room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Dropped returns the number of events dropped because a queue was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

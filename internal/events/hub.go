package events

import (
	"log/slog"
	"sync"
	"time"
)

// Event describes a committed change to a collection.
type Event struct {
	Entity string    `json:"entity"` // property, customer, receipt, ...
	Action string    `json:"action"` // created, updated, deleted
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Publisher is the write side of the hub. Repositories publish after every
// persisted mutation.
type Publisher interface {
	Publish(e Event)
}

// Hub fans committed change events out to subscribers (the WebSocket feed
// and the dashboard cache invalidator). Slow subscribers drop events rather
// than block the request path.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[int]chan Event),
		logger: logger,
	}
}

// Publish delivers e to every subscriber without blocking.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.logger.Warn("event dropped for slow subscriber", slog.Int("subscriber", id))
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called when the subscriber goes away.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

package sse

import (
	"sync"
)

// BroadcastKey receives every event published through the hub's notifier,
// regardless of recipient. Admin streams subscribe to it.
const BroadcastKey = "*"

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Event string
	Data  interface{}
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers one channel under every key and returns it with a
// cleanup function.
func (h *Hub) Subscribe(keys ...string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	for _, key := range keys {
		if h.subscribers[key] == nil {
			h.subscribers[key] = make(map[chan Event]struct{})
		}
		h.subscribers[key][ch] = struct{}{}
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, key := range keys {
				delete(h.subscribers[key], ch)
				if len(h.subscribers[key]) == 0 {
					delete(h.subscribers, key)
				}
			}
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish sends event once to every channel subscribed under any of keys.
func (h *Hub) Publish(event Event, keys ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := make(map[chan Event]struct{})
	for _, key := range keys {
		for ch := range h.subscribers[key] {
			if _, dup := sent[ch]; dup {
				continue
			}
			sent[ch] = struct{}{}
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a key
func (h *Hub) SubscriberCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[key])
}

// TotalSubscribers returns the number of distinct open channels
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[chan Event]struct{})
	for _, subs := range h.subscribers {
		for ch := range subs {
			seen[ch] = struct{}{}
		}
	}
	return len(seen)
}

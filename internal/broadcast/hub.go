// Package broadcast is an in-memory pub/sub for chat events.
//
// Hub events are best-effort and are not persisted. The authoritative chat
// transcript lives in the database; a client that missed events recovers by
// reading it, never by replay.
package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"chatgen/backend/internal/model"
)

const (
	defaultBufferSize = 256
	// Terminal events wait this long for a full subscriber before being dropped.
	terminalSendTimeout = 2 * time.Second
)

// Subscriber is one live consumer's mailbox. Events arrive in publish order.
type Subscriber struct {
	events    chan model.Event
	closed    chan struct{}
	closeOnce sync.Once
}

func NewSubscriber(bufferSize int) *Subscriber {
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}
	return &Subscriber{
		events: make(chan model.Event, bufferSize),
		closed: make(chan struct{}),
	}
}

func (s *Subscriber) Events() <-chan model.Event {
	return s.events
}

// Closed is closed once the subscriber stops reading.
func (s *Subscriber) Closed() <-chan struct{} {
	return s.closed
}

// Close marks the subscriber gone. The events channel is never closed so a
// concurrent publisher cannot panic.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Hub holds one group of subscribers per chat ID.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Subscriber]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		groups: make(map[string]map[*Subscriber]struct{}),
		logger: logger.With("component", "broadcast_hub"),
	}
}

// Join adds sub to the chat's group. Joining twice is harmless.
func (h *Hub) Join(chatID string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[chatID]
	if group == nil {
		group = make(map[*Subscriber]struct{})
		h.groups[chatID] = group
	}
	group[sub] = struct{}{}
}

// Leave removes sub from the chat's group. It is idempotent.
func (h *Hub) Leave(chatID string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.groups[chatID]; ok {
		delete(group, sub)
		if len(group) == 0 {
			delete(h.groups, chatID)
		}
	}
}

// Publish delivers ev to every current subscriber of chatID. With no
// subscribers the event is dropped. Token events never block the publisher;
// other events wait briefly for room so end-of-stream signals are not lost to
// a momentarily full buffer.
func (h *Hub) Publish(chatID string, ev model.Event) {
	h.mu.RLock()
	group := h.groups[chatID]
	subs := make([]*Subscriber, 0, len(group))
	for sub := range group {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if ev.Type == model.EventToken {
			select {
			case sub.events <- ev:
			case <-sub.closed:
			default:
				h.logger.Debug("dropping token for slow subscriber", "chat_id", chatID)
			}
			continue
		}

		timer := time.NewTimer(terminalSendTimeout)
		select {
		case sub.events <- ev:
		case <-sub.closed:
		case <-timer.C:
			h.logger.Warn("dropping event for stalled subscriber", "chat_id", chatID, "event_type", ev.Type)
		}
		timer.Stop()
	}
}

// SubscriberCount returns the current number of subscribers for chatID.
func (h *Hub) SubscriberCount(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[chatID])
}

package task

import "sync"

// Registry maps a chat ID to the handle of its in-flight generation.
//
// It does not enforce one-generation-per-user; callers check that before
// registering. Each key has a single writer at a time: the start path
// registers, the task's completion callback removes.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// RegisterIfAbsent stores h unless its chat ID already has a handle. The
// check and the store happen under one lock.
func (r *Registry) RegisterIfAbsent(h *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handles[h.ChatID]; ok {
		return false
	}
	r.handles[h.ChatID] = h
	return true
}

// Register stores h under its chat ID and returns the handle it replaced, if any.
func (r *Registry) Register(h *Handle) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.handles[h.ChatID]
	r.handles[h.ChatID] = h
	return prev
}

// Cancel signals the handle registered for chatID and reports whether one was found.
func (r *Registry) Cancel(chatID string) bool {
	r.mu.Lock()
	h, ok := r.handles[chatID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	h.Cancel()
	return true
}

// Remove deletes the entry for chatID only if it is still h. A newer task that
// reused the chat ID keeps its entry.
func (r *Registry) Remove(chatID string, h *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.handles[chatID]; ok && cur == h {
		delete(r.handles, chatID)
		return true
	}
	return false
}

func (r *Registry) Get(chatID string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[chatID]
}

func (r *Registry) Has(chatID string) bool {
	return r.Get(chatID) != nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

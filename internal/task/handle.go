package task

import (
	"context"
	"sync"
)

// Handle is the cancellable reference to one in-flight task.
//
// Lifecycle: created -> running -> done. Cancel may be called at any point and
// any number of times. Completion callbacks run exactly once, after the task
// function has returned.
type Handle struct {
	ChatID string

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	onDone []func()
	done   chan struct{}
	closed bool
}

func newHandle(parent context.Context, chatID string) *Handle {
	ctx, cancel := context.WithCancel(parent)
	return &Handle{
		ChatID: chatID,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Context is cancelled when the handle is cancelled or the scheduler shuts down.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Cancel signals cooperative cancellation. It does not wait for the task.
func (h *Handle) Cancel() {
	h.cancel()
}

// Cancelled reports whether cancellation has been signalled.
func (h *Handle) Cancelled() bool {
	return h.ctx.Err() != nil
}

// Done is closed once the task function has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// OnDone registers fn to run on completion. If the task already finished, fn
// runs immediately.
func (h *Handle) OnDone(fn func()) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		fn()
		return
	}
	h.onDone = append(h.onDone, fn)
	h.mu.Unlock()
}

func (h *Handle) finish() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	callbacks := h.onDone
	h.onDone = nil
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	h.cancel()
	close(h.done)
}

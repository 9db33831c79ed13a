package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

// SchedulerConfig holds configuration for the scheduler.
type SchedulerConfig struct {
	// MaxConcurrent bounds how many task functions run at once.
	// Zero or negative means unbounded.
	MaxConcurrent int
}

// Scheduler runs tasks on goroutines that derive from its own root context,
// never from the submitting request. Tasks progress concurrently; Submit
// never blocks the caller.
type Scheduler struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	sem        *semaphore.Weighted
	logger     *slog.Logger
	errHandler func(h *Handle, err error)
}

// NewScheduler creates a Scheduler. Call Shutdown to cancel and drain it.
func NewScheduler(config SchedulerConfig, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	logger = logger.With("component", "scheduler")

	s := &Scheduler{
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
		errHandler: func(h *Handle, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed", "chat_id", h.ChatID, "error", err)
		},
	}
	if config.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(config.MaxConcurrent))
	}
	return s
}

// SetErrorHandler allows setting a custom error handler function
func (s *Scheduler) SetErrorHandler(handler func(h *Handle, err error)) {
	s.errHandler = handler
}

// NewHandle creates a handle whose context is a child of the scheduler's root.
func (s *Scheduler) NewHandle(chatID string) *Handle {
	return newHandle(s.ctx, chatID)
}

// Submit runs fn for h in the background. Errors other than cancellation and
// panics are passed to the error handler; neither affects other tasks.
func (s *Scheduler) Submit(h *Handle, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer h.finish()

		if s.sem != nil {
			// A cancelled wait still runs fn so the task can clean up after itself.
			if err := s.sem.Acquire(h.ctx, 1); err == nil {
				defer s.sem.Release(1)
			}
		}

		if err := s.run(h, fn); err != nil && !errors.Is(err, context.Canceled) {
			s.errHandler(h, err)
		}
	}()
}

func (s *Scheduler) run(h *Handle, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked", "chat_id", h.ChatID, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(h.ctx)
}

// Shutdown cancels every running task and waits for them to return or for
// ctx to expire.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.cancelFunc()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown: %w", ctx.Err())
	}
}

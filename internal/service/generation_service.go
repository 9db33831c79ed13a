package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"chatgen/backend/internal/broadcast"
	apperrors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/repository"
	"chatgen/backend/internal/task"
)

// SettingsProvider supplies the configured default models.
type SettingsProvider interface {
	Get(ctx context.Context) (*Settings, error)
}

// StartOptions configure one generation attempt.
type StartOptions struct {
	// Model overrides the configured main model when set.
	Model         string
	GenerateTitle bool
	RandomizeSeed bool
	Options       *model.GenerationOptions
	// Turn is the history edit stored together with the claim. A rejected
	// start writes none of it.
	Turn repository.TurnChange
}

type GenerationConfig struct {
	// TestMode makes seeds a deterministic per-chat counter.
	TestMode bool
}

// outcome is the terminal state of one run.
type outcome int

const (
	outcomeCompleted outcome = iota
	outcomeCancelled
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeCompleted:
		return "completed"
	case outcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// GenerationService drives assistant-reply generation. Each run is a task on
// the scheduler, registered by chat ID, publishing its progress to the hub.
type GenerationService struct {
	repo      repository.Repository
	llm       llm.LLMProvider
	settings  SettingsProvider
	registry  *task.Registry
	scheduler *task.Scheduler
	hub       *broadcast.Hub
	seeds     *seedSource
	logger    *slog.Logger
}

func NewGenerationService(
	repo repository.Repository,
	llmProvider llm.LLMProvider,
	settings SettingsProvider,
	registry *task.Registry,
	scheduler *task.Scheduler,
	hub *broadcast.Hub,
	config GenerationConfig,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		repo:      repo,
		llm:       llmProvider,
		settings:  settings,
		registry:  registry,
		scheduler: scheduler,
		hub:       hub,
		seeds:     newSeedSource(config.TestMode),
		logger:    logger.With("component", "generation_service"),
	}
}

// generationJob is everything a run needs, captured at start time.
type generationJob struct {
	chatID        string
	userID        string
	messageID     string
	messageIndex  int
	model         string
	generateTitle bool
	options       llm.Options
	// release drops the registry entry. Called once the pending reference is
	// cleared so a new start is not refused while the task winds down.
	release func()
}

// Start claims the chat for a new assistant reply and schedules its
// generation. It returns the reply's zero-based message index, or
// ErrAlreadyPending when any chat of the owner is still generating.
func (s *GenerationService) Start(ctx context.Context, chat *model.Chat, opts StartOptions) (int, error) {
	modelName, err := s.resolveModel(ctx, opts.Model)
	if err != nil {
		return 0, err
	}

	// Register before claiming in storage so that Reconcile never sees a
	// pending chat without its handle.
	h := s.scheduler.NewHandle(chat.ID)
	if !s.registry.RegisterIfAbsent(h) {
		h.Cancel()
		return 0, apperrors.ErrAlreadyPending
	}

	now := time.Now().UTC()
	msg := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Role:      model.RoleAssistant,
		Model:     &modelName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	index, err := s.repo.BeginGeneration(ctx, chat.UserID, opts.Turn, msg)
	if err != nil {
		s.registry.Remove(chat.ID, h)
		h.Cancel()
		switch {
		case errors.Is(err, repository.ErrConflict):
			return 0, apperrors.ErrAlreadyPending
		case errors.Is(err, repository.ErrNotFound):
			return 0, fmt.Errorf("chat %s: %w", chat.ID, apperrors.ErrNotFound)
		default:
			return 0, fmt.Errorf("could not begin generation: %w", err)
		}
	}
	release := func() { s.registry.Remove(chat.ID, h) }
	h.OnDone(release)

	job := &generationJob{
		chatID:        chat.ID,
		userID:        chat.UserID,
		messageID:     msg.ID,
		messageIndex:  index,
		model:         modelName,
		generateTitle: opts.GenerateTitle,
		options:       resolveOptions(opts.Options, s.seeds.next(chat.ID, opts.Options, opts.RandomizeSeed)),
		release:       release,
	}
	s.logger.Info("starting generation", "chat_id", chat.ID, "message_id", msg.ID, "model", modelName, "message_index", index)
	s.scheduler.Submit(h, func(taskCtx context.Context) error {
		return s.run(taskCtx, job)
	})
	return index, nil
}

func (s *GenerationService) resolveModel(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("could not load settings: %w", err)
	}
	if settings.MainModel == "" {
		return "", fmt.Errorf("%w: no model configured", apperrors.ErrValidation)
	}
	return settings.MainModel, nil
}

// Stop cancels the chat's running task. A pending reference with no task
// behind it is cleared instead. Stopping an idle chat is a no-op.
func (s *GenerationService) Stop(ctx context.Context, chatID string) bool {
	if s.registry.Cancel(chatID) {
		s.logger.Info("generation stop requested", "chat_id", chatID)
		return true
	}

	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("could not read chat while stopping", "chat_id", chatID, "error", err)
		}
		return false
	}
	if chat.PendingMessageID != nil {
		s.clearOrphan(ctx, chat)
	}
	return false
}

// StopAll stops every pending chat of userID and returns how many were found.
func (s *GenerationService) StopAll(ctx context.Context, userID string) (int, error) {
	chats, err := s.repo.GetPendingChats(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not list pending chats: %w", err)
	}
	for _, chat := range chats {
		s.Stop(ctx, chat.ID)
	}
	return len(chats), nil
}

func (s *GenerationService) IsAnyPending(ctx context.Context, userID string) (bool, error) {
	return s.repo.HasPendingChats(ctx, userID)
}

// PendingChats lists the chats of userID that are generating.
func (s *GenerationService) PendingChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	return s.repo.GetPendingChats(ctx, userID)
}

// Reconcile clears pending references of userID's chats that have no live
// task, e.g. after a stop through another surface or a crash. It returns the
// number of references cleared.
func (s *GenerationService) Reconcile(ctx context.Context, userID string) (int, error) {
	chats, err := s.repo.GetPendingChats(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not list pending chats: %w", err)
	}
	cleared := 0
	for _, chat := range chats {
		if s.registry.Has(chat.ID) {
			continue
		}
		if s.clearOrphan(ctx, chat) {
			cleared++
		}
	}
	return cleared, nil
}

func (s *GenerationService) clearOrphan(ctx context.Context, chat *model.Chat) bool {
	ok, err := s.repo.ClearPendingMessage(context.WithoutCancel(ctx), chat.ID, *chat.PendingMessageID)
	if err != nil {
		s.logger.Warn("could not clear orphaned pending message", "chat_id", chat.ID, "error", err)
		return false
	}
	if ok {
		s.logger.Info("cleared orphaned pending message", "chat_id", chat.ID, "message_id", *chat.PendingMessageID)
	}
	return ok
}

// ForgetChat drops per-chat generation state after the chat is deleted.
func (s *GenerationService) ForgetChat(chatID string) {
	s.seeds.forget(chatID)
}

// Shutdown cancels all running tasks and waits for them to settle.
func (s *GenerationService) Shutdown(ctx context.Context) error {
	return s.scheduler.Shutdown(ctx)
}

// run is the body of one generation task. ctx is cancelled by Stop or
// shutdown; storage writes use a detached context so a cancel never lands
// in the middle of one.
func (s *GenerationService) run(ctx context.Context, job *generationJob) error {
	logger := s.logger.With("chat_id", job.chatID, "message_id", job.messageID, "model", job.model)
	writeCtx := context.WithoutCancel(ctx)

	// Prompting
	messages, err := s.repo.GetMessages(writeCtx, job.chatID)
	if err != nil {
		return s.fail(writeCtx, logger, job, fmt.Errorf("could not load history: %w", err))
	}
	prefs, err := s.repo.GetUserPreferences(writeCtx, job.userID)
	if err != nil {
		logger.Warn("could not load user preferences, using defaults", "error", err)
		prefs = nil
	}
	history, found := buildHistory(prefs, messages, job.messageID)
	if !found {
		logger.Debug("pending message vanished before streaming")
		s.finishCancelled(writeCtx, logger, job, "", false)
		return nil
	}
	if ctx.Err() != nil {
		s.finishCancelled(writeCtx, logger, job, "", false)
		return nil
	}

	// Streaming
	text, result, streamErr := s.stream(ctx, writeCtx, logger, job, history)
	switch result {
	case outcomeCompleted:
		s.finishCompleted(writeCtx, logger, job, firstUserText(messages), text)
		return nil
	case outcomeCancelled:
		s.finishCancelled(writeCtx, logger, job, firstUserText(messages), true)
		return nil
	default:
		return s.fail(writeCtx, logger, job, streamErr)
	}
}

// stream consumes fragments until the backend finishes, the task is
// cancelled, or the pending message disappears. Cancellation is observed only
// between fragments.
func (s *GenerationService) stream(ctx, writeCtx context.Context, logger *slog.Logger, job *generationJob, history []llm.Message) (string, outcome, error) {
	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	ch := make(chan llm.StreamResponse)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.llm.GenerateStream(streamCtx, &llm.GenerateRequest{
			Model:    job.model,
			Messages: history,
			Options:  job.options,
		}, ch)
	}()

	var full strings.Builder
	result := outcomeCompleted
	var writeErr error
	for chunk := range ch {
		if ctx.Err() != nil {
			result = outcomeCancelled
			break
		}
		if chunk.Content == "" {
			continue
		}
		if err := s.repo.AppendMessageContent(writeCtx, job.messageID, chunk.Content); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logger.Debug("pending message deleted mid-stream")
				result = outcomeCancelled
			} else {
				result = outcomeFailed
				writeErr = fmt.Errorf("could not persist fragment: %w", err)
			}
			break
		}
		full.WriteString(chunk.Content)
		s.hub.Publish(job.chatID, model.NewTokenEvent(chunk.Content, job.messageIndex))
	}

	cancelStream()
	for range ch {
	}
	streamErr := <-errCh

	switch {
	case result != outcomeCompleted:
		return full.String(), result, writeErr
	case ctx.Err() != nil:
		return full.String(), outcomeCancelled, nil
	case streamErr != nil:
		return full.String(), outcomeFailed, streamErr
	}
	return full.String(), outcomeCompleted, nil
}

func (s *GenerationService) finishCompleted(ctx context.Context, logger *slog.Logger, job *generationJob, userText, text string) {
	s.hub.Publish(job.chatID, model.NewMessageEvent(text, job.messageIndex))
	if job.generateTitle {
		s.maybeTitle(ctx, logger, job, userText, text)
	}
	s.clearPending(ctx, logger, job)
	s.hub.Publish(job.chatID, model.NewEndEvent())
	logger.Info("generation finished", "outcome", outcomeCompleted.String(), "length", len(text))
}

// finishCancelled clears the pending reference and publishes nothing for the
// stream. A requested title is still produced from whatever was persisted.
func (s *GenerationService) finishCancelled(ctx context.Context, logger *slog.Logger, job *generationJob, userText string, titleAllowed bool) {
	s.clearPending(ctx, logger, job)
	if titleAllowed && job.generateTitle {
		text, ok := s.persistedText(ctx, job)
		if ok {
			s.maybeTitle(ctx, logger, job, userText, text)
		}
	}
	logger.Info("generation finished", "outcome", outcomeCancelled.String())
}

func (s *GenerationService) fail(ctx context.Context, logger *slog.Logger, job *generationJob, err error) error {
	s.clearPending(ctx, logger, job)
	s.hub.Publish(job.chatID, model.NewErrorEvent("generation failed"))
	s.hub.Publish(job.chatID, model.NewEndEvent())
	logger.Info("generation finished", "outcome", outcomeFailed.String())
	return fmt.Errorf("generation for chat %s failed: %w", job.chatID, err)
}

// clearPending ends the claim in storage and in the registry together.
func (s *GenerationService) clearPending(ctx context.Context, logger *slog.Logger, job *generationJob) {
	if _, err := s.repo.ClearPendingMessage(ctx, job.chatID, job.messageID); err != nil {
		logger.Error("could not clear pending message", "error", err)
	}
	if job.release != nil {
		job.release()
	}
}

// persistedText re-reads the reply from storage; false means it is gone.
func (s *GenerationService) persistedText(ctx context.Context, job *generationJob) (string, bool) {
	messages, err := s.repo.GetMessages(ctx, job.chatID)
	if err != nil {
		return "", false
	}
	for _, m := range messages {
		if m.ID == job.messageID {
			return m.Content, true
		}
	}
	return "", false
}

// maybeTitle titles the chat after its first assistant turn only.
func (s *GenerationService) maybeTitle(ctx context.Context, logger *slog.Logger, job *generationJob, userText, assistantText string) {
	count, err := s.repo.CountAssistantMessages(ctx, job.chatID)
	if err != nil || count != 1 {
		return
	}

	titleModel := job.model
	if settings, err := s.settings.Get(ctx); err == nil && settings.SupportModel != "" {
		titleModel = settings.SupportModel
	}
	title, err := s.generateTitle(ctx, titleModel, userText, assistantText)
	if err != nil {
		logger.Warn("failed to generate title", "error", err)
		return
	}
	if title == "" {
		logger.Debug("generated title was empty after cleaning")
		return
	}
	if err := s.repo.UpdateChatTitle(ctx, job.chatID, title); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("failed to save title", "error", err)
		}
		return
	}
	s.hub.Publish(job.chatID, model.NewTitleEvent(title))
}

func firstUserText(messages []model.Message) string {
	for _, m := range messages {
		if m.Role == model.RoleUser {
			return m.Content
		}
	}
	return ""
}

package repository_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgen/backend/internal/database"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/repository"
)

func setupRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteRepository(db)
}

func createChat(t *testing.T, repo repository.Repository, userID string) *model.Chat {
	t.Helper()
	now := time.Now().UTC()
	chat := &model.Chat{ID: uuid.NewString(), UserID: userID, Title: "t", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateChat(context.Background(), chat))
	return chat
}

func addMessage(t *testing.T, repo repository.Repository, chatID, role, content string) *model.Message {
	t.Helper()
	now := time.Now().UTC()
	msg := &model.Message{ID: uuid.NewString(), ChatID: chatID, Role: role, Content: content, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.AddMessage(context.Background(), msg))
	return msg
}

func userMessage(chatID, content string) *model.Message {
	now := time.Now().UTC()
	return &model.Message{ID: uuid.NewString(), ChatID: chatID, Role: model.RoleUser, Content: content, CreatedAt: now, UpdatedAt: now}
}

func placeholder(chatID string) *model.Message {
	now := time.Now().UTC()
	return &model.Message{ID: uuid.NewString(), ChatID: chatID, Role: model.RoleAssistant, CreatedAt: now, UpdatedAt: now}
}

func TestBeginGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("claims the chat and reports the position", func(t *testing.T) {
		repo := setupRepo(t)
		chat := createChat(t, repo, "u1")
		addMessage(t, repo, chat.ID, model.RoleUser, "hello")

		msg := placeholder(chat.ID)
		position, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, msg)
		require.NoError(t, err)
		assert.Equal(t, 1, position)

		stored, err := repo.GetChat(ctx, chat.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PendingMessageID)
		assert.Equal(t, msg.ID, *stored.PendingMessageID)

		pending, err := repo.HasPendingChats(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, pending)
	})

	t.Run("one pending chat per user", func(t *testing.T) {
		repo := setupRepo(t)
		first := createChat(t, repo, "u1")
		second := createChat(t, repo, "u1")
		other := createChat(t, repo, "u2")

		_, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, placeholder(first.ID))
		require.NoError(t, err)

		_, err = repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, placeholder(second.ID))
		assert.ErrorIs(t, err, repository.ErrConflict)

		_, err = repo.BeginGeneration(ctx, "u2", repository.TurnChange{}, placeholder(other.ID))
		assert.NoError(t, err, "other users are unaffected")

		messages, err := repo.GetMessages(ctx, second.ID)
		require.NoError(t, err)
		assert.Empty(t, messages, "a rejected claim leaves no placeholder behind")
	})

	t.Run("concurrent claims admit exactly one", func(t *testing.T) {
		repo := setupRepo(t)
		chats := make([]*model.Chat, 8)
		for i := range chats {
			chats[i] = createChat(t, repo, "u1")
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for _, chat := range chats {
			wg.Add(1)
			go func(chatID string) {
				defer wg.Done()
				if _, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, placeholder(chatID)); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(chat.ID)
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("foreign or missing chat", func(t *testing.T) {
		repo := setupRepo(t)
		chat := createChat(t, repo, "u1")

		_, err := repo.BeginGeneration(ctx, "u2", repository.TurnChange{}, placeholder(chat.ID))
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, placeholder(uuid.NewString()))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("stores the user turn with the claim", func(t *testing.T) {
		repo := setupRepo(t)
		chat := createChat(t, repo, "u1")
		question := userMessage(chat.ID, "why is the sky blue?")

		position, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{Append: question}, placeholder(chat.ID))
		require.NoError(t, err)
		assert.Equal(t, 1, position)

		messages, err := repo.GetMessages(ctx, chat.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "why is the sky blue?", messages[0].Content)
		assert.Equal(t, model.RoleAssistant, messages[1].Role)
	})

	t.Run("rejected claim keeps the history untouched", func(t *testing.T) {
		repo := setupRepo(t)
		busy := createChat(t, repo, "u1")
		_, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, placeholder(busy.ID))
		require.NoError(t, err)

		chat := createChat(t, repo, "u1")
		q1 := addMessage(t, repo, chat.ID, model.RoleUser, "q1")
		addMessage(t, repo, chat.ID, model.RoleAssistant, "a1")
		truncate := 1

		_, err = repo.BeginGeneration(ctx, "u1", repository.TurnChange{
			Edit:         &repository.MessageEdit{MessageID: q1.ID, Content: "q1 edited"},
			TruncateFrom: &truncate,
			Append:       userMessage(chat.ID, "q2"),
		}, placeholder(chat.ID))
		assert.ErrorIs(t, err, repository.ErrConflict)

		messages, err := repo.GetMessages(ctx, chat.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "q1", messages[0].Content)
		assert.Equal(t, "a1", messages[1].Content)
	})

	t.Run("edit and truncate before the reply", func(t *testing.T) {
		repo := setupRepo(t)
		chat := createChat(t, repo, "u1")
		q1 := addMessage(t, repo, chat.ID, model.RoleUser, "q1")
		addMessage(t, repo, chat.ID, model.RoleAssistant, "a1")
		addMessage(t, repo, chat.ID, model.RoleUser, "q2")
		truncate := 1

		position, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{
			Edit:         &repository.MessageEdit{MessageID: q1.ID, Content: "q1 edited"},
			TruncateFrom: &truncate,
		}, placeholder(chat.ID))
		require.NoError(t, err)
		assert.Equal(t, 1, position)

		messages, err := repo.GetMessages(ctx, chat.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "q1 edited", messages[0].Content)
		assert.Equal(t, model.RoleAssistant, messages[1].Role)
		assert.Empty(t, messages[1].Content)
	})

	t.Run("edit of a missing message aborts the claim", func(t *testing.T) {
		repo := setupRepo(t)
		chat := createChat(t, repo, "u1")
		addMessage(t, repo, chat.ID, model.RoleUser, "q1")

		_, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{
			Edit: &repository.MessageEdit{MessageID: uuid.NewString(), Content: "x"},
		}, placeholder(chat.ID))
		assert.ErrorIs(t, err, repository.ErrNotFound)

		pending, err := repo.HasPendingChats(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, pending)
	})
}

func TestAppendMessageContent(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	chat := createChat(t, repo, "u1")
	msg := placeholder(chat.ID)
	_, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, msg)
	require.NoError(t, err)

	require.NoError(t, repo.AppendMessageContent(ctx, msg.ID, "Hel"))
	require.NoError(t, repo.AppendMessageContent(ctx, msg.ID, "lo"))

	messages, err := repo.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Hello", messages[0].Content)

	require.NoError(t, repo.DeleteChat(ctx, chat.ID))
	err = repo.AppendMessageContent(ctx, msg.ID, "!")
	assert.ErrorIs(t, err, repository.ErrNotFound, "the message went with its chat")
}

func TestClearPendingMessage(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	chat := createChat(t, repo, "u1")
	msg := placeholder(chat.ID)
	_, err := repo.BeginGeneration(ctx, "u1", repository.TurnChange{}, msg)
	require.NoError(t, err)

	cleared, err := repo.ClearPendingMessage(ctx, chat.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, cleared, "only the owning message may clear the marker")

	cleared, err = repo.ClearPendingMessage(ctx, chat.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = repo.ClearPendingMessage(ctx, chat.ID, msg.ID)
	require.NoError(t, err)
	assert.False(t, cleared)

	cleared, err = repo.ClearPendingMessage(ctx, uuid.NewString(), msg.ID)
	require.NoError(t, err)
	assert.False(t, cleared, "a missing chat is not an error")
}

func TestClearAllPending(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	for _, user := range []string{"u1", "u2"} {
		chat := createChat(t, repo, user)
		_, err := repo.BeginGeneration(ctx, user, repository.TurnChange{}, placeholder(chat.ID))
		require.NoError(t, err)
	}

	n, err := repo.ClearAllPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	chats, err := repo.GetPendingChats(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestDeleteMessagesFrom(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	chat := createChat(t, repo, "u1")
	for _, content := range []string{"q1", "a1", "q2", "a2"} {
		role := model.RoleUser
		if content[0] == 'a' {
			role = model.RoleAssistant
		}
		addMessage(t, repo, chat.ID, role, content)
	}

	require.NoError(t, repo.DeleteMessagesFrom(ctx, chat.ID, 2))

	messages, err := repo.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "q1", messages[0].Content)
	assert.Equal(t, "a1", messages[1].Content)

	count, err := repo.CountAssistantMessages(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMessagesWithFiles(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	chat := createChat(t, repo, "u1")
	now := time.Now().UTC()
	msg := &model.Message{
		ID: uuid.NewString(), ChatID: chat.ID, Role: model.RoleUser, Content: "see file",
		Files:     []model.File{{Name: "a.txt", MimeType: "text/plain", Data: []byte("alpha")}},
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.AddMessage(ctx, msg))

	require.NoError(t, repo.UpdateMessageContent(ctx, msg.ID, "see files", []model.File{
		{Name: "b.png", MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}))

	messages, err := repo.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "see files", messages[0].Content)
	require.Len(t, messages[0].Files, 1)
	assert.Equal(t, "b.png", messages[0].Files[0].Name)
	assert.True(t, messages[0].Files[0].IsImage())

	err = repo.UpdateMessageContent(ctx, uuid.NewString(), "x", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatsListing(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	active := createChat(t, repo, "u1")
	archived := createChat(t, repo, "u1")
	createChat(t, repo, "u2")
	require.NoError(t, repo.SetChatArchived(ctx, archived.ID, true))
	require.NoError(t, repo.UpdateChatTitle(ctx, active.ID, "Renamed"))

	chats, err := repo.GetChats(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Renamed", chats[0].Title)

	chats, err = repo.GetChats(ctx, "u1", true)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, archived.ID, chats[0].ID)

	assert.ErrorIs(t, repo.UpdateChatTitle(ctx, uuid.NewString(), "x"), repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteChat(ctx, uuid.NewString()), repository.ErrNotFound)
}

func TestUserPreferences(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	prefs, err := repo.GetUserPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &model.UserPreferences{UserID: "u1"}, prefs, "missing row reads as empty preferences")

	require.NoError(t, repo.SaveUserPreferences(ctx, &model.UserPreferences{UserID: "u1", Nickname: "Sam"}))
	require.NoError(t, repo.SaveUserPreferences(ctx, &model.UserPreferences{UserID: "u1", Nickname: "Sam", Occupation: "pilot"}))

	prefs, err = repo.GetUserPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", prefs.Nickname)
	assert.Equal(t, "pilot", prefs.Occupation)
}

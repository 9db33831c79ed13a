package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chatgen/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const chatColumns = "id, user_id, title, pending_message_id, archived, temporary, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (*model.Chat, error) {
	var chat model.Chat
	var pending sql.NullString
	if err := row.Scan(&chat.ID, &chat.UserID, &chat.Title, &pending, &chat.Archived, &chat.Temporary, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, err
	}
	if pending.Valid {
		chat.PendingMessageID = &pending.String
	}
	return &chat, nil
}

// requireAffected turns a zero-row update into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Chats ---

func (r *sqliteRepository) CreateChat(ctx context.Context, chat *model.Chat) error {
	query := "INSERT INTO chats (" + chatColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, chat.ID, chat.UserID, chat.Title, chat.PendingMessageID, chat.Archived, chat.Temporary, chat.CreatedAt, chat.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	query := "SELECT " + chatColumns + " FROM chats WHERE id = ?"
	chat, err := scanChat(r.db.QueryRowContext(ctx, query, chatID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return chat, nil
}

func (r *sqliteRepository) queryChats(ctx context.Context, query string, args ...any) ([]*model.Chat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []*model.Chat{}
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *sqliteRepository) GetChats(ctx context.Context, userID string, archived bool) ([]*model.Chat, error) {
	query := "SELECT " + chatColumns + " FROM chats WHERE user_id = ? AND archived = ? ORDER BY updated_at DESC"
	return r.queryChats(ctx, query, userID, archived)
}

func (r *sqliteRepository) UpdateChatTitle(ctx context.Context, chatID, newTitle string) error {
	query := "UPDATE chats SET title = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, newTitle, chatID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sqliteRepository) SetChatArchived(ctx context.Context, chatID string, archived bool) error {
	query := "UPDATE chats SET archived = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, archived, chatID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sqliteRepository) DeleteChat(ctx context.Context, chatID string) error {
	query := "DELETE FROM chats WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, chatID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// --- Messages ---

func insertFiles(ctx context.Context, tx *sql.Tx, messageID string, files []model.File) error {
	for i := range files {
		f := &files[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO files (id, message_id, name, mime_type, data, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			f.ID, messageID, f.Name, f.MimeType, f.Data, f.CreatedAt)
		if err != nil {
			return fmt.Errorf("could not insert file: %w", err)
		}
	}
	return nil
}

func insertMessage(ctx context.Context, tx *sql.Tx, message *model.Message) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO messages (id, chat_id, role, content, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		message.ID, message.ChatID, message.Role, message.Content, message.Model, message.CreatedAt, message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}
	return insertFiles(ctx, tx, message.ID, message.Files)
}

// touchChat bumps updated_at so it follows the latest message.
func touchChat(ctx context.Context, tx *sql.Tx, chatID string, at time.Time) error {
	res, err := tx.ExecContext(ctx, "UPDATE chats SET updated_at = ? WHERE id = ?", at, chatID)
	if err != nil {
		return fmt.Errorf("could not update chat timestamp: %w", err)
	}
	return requireAffected(res)
}

func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := touchChat(ctx, tx, message.ChatID, message.CreatedAt); err != nil {
		return err
	}
	if err := insertMessage(ctx, tx, message); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	query := `
		SELECT id, chat_id, role, content, model, created_at, updated_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at ASC, rowid ASC
	`
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}

	messages := []model.Message{}
	index := map[string]int{}
	for rows.Next() {
		var msg model.Message
		var modelName sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &modelName, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if modelName.Valid {
			msg.Model = &modelName.String
		}
		index[msg.ID] = len(messages)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(messages) == 0 {
		return messages, nil
	}

	fileRows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.message_id, f.name, f.mime_type, f.data, f.created_at
		FROM files f JOIN messages m ON m.id = f.message_id
		WHERE m.chat_id = ?
		ORDER BY f.created_at ASC, f.rowid ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer fileRows.Close()
	for fileRows.Next() {
		var f model.File
		var messageID string
		if err := fileRows.Scan(&f.ID, &messageID, &f.Name, &f.MimeType, &f.Data, &f.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[messageID]; ok {
			messages[i].Files = append(messages[i].Files, f)
		}
	}
	return messages, fileRows.Err()
}

func (r *sqliteRepository) UpdateMessageContent(ctx context.Context, messageID, content string, files []model.File) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := rewriteMessage(ctx, tx, messageID, content, files); err != nil {
		return err
	}
	return tx.Commit()
}

func rewriteMessage(ctx context.Context, tx *sql.Tx, messageID, content string, files []model.File) error {
	res, err := tx.ExecContext(ctx, "UPDATE messages SET content = ?, updated_at = ? WHERE id = ?", content, time.Now().UTC(), messageID)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if files != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM files WHERE message_id = ?", messageID); err != nil {
			return fmt.Errorf("could not replace files: %w", err)
		}
		if err := insertFiles(ctx, tx, messageID, files); err != nil {
			return err
		}
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *sqliteRepository) DeleteMessagesFrom(ctx context.Context, chatID string, position int) error {
	return deleteMessagesFrom(ctx, r.db, chatID, position)
}

func deleteMessagesFrom(ctx context.Context, db execer, chatID string, position int) error {
	query := `
		DELETE FROM messages WHERE id IN (
			SELECT id FROM messages WHERE chat_id = ?
			ORDER BY created_at ASC, rowid ASC
			LIMIT -1 OFFSET ?
		)
	`
	_, err := db.ExecContext(ctx, query, chatID, position)
	return err
}

func (r *sqliteRepository) CountAssistantMessages(ctx context.Context, chatID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE chat_id = ? AND role = 'assistant'", chatID).Scan(&n)
	return n, err
}

// --- Pending generation ---

func (r *sqliteRepository) BeginGeneration(ctx context.Context, userID string, turn TurnChange, message *model.Message) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var pending int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chats WHERE user_id = ? AND pending_message_id IS NOT NULL", userID,
	).Scan(&pending); err != nil {
		return 0, err
	}
	if pending > 0 {
		return 0, ErrConflict
	}

	var owner string
	if err := tx.QueryRowContext(ctx, "SELECT user_id FROM chats WHERE id = ?", message.ChatID).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if owner != userID {
		return 0, ErrNotFound
	}

	if err := applyTurn(ctx, tx, message.ChatID, turn); err != nil {
		return 0, err
	}

	var position int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE chat_id = ?", message.ChatID).Scan(&position); err != nil {
		return 0, err
	}

	if err := insertMessage(ctx, tx, message); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE chats SET pending_message_id = ?, updated_at = ? WHERE id = ?",
		message.ID, message.CreatedAt, message.ChatID,
	); err != nil {
		return 0, fmt.Errorf("could not mark chat pending: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return position, nil
}

// applyTurn runs the history edit of a claim inside its transaction.
func applyTurn(ctx context.Context, tx *sql.Tx, chatID string, turn TurnChange) error {
	if turn.Edit != nil {
		if err := rewriteMessage(ctx, tx, turn.Edit.MessageID, turn.Edit.Content, turn.Edit.Files); err != nil {
			return err
		}
	}
	if turn.TruncateFrom != nil {
		if err := deleteMessagesFrom(ctx, tx, chatID, *turn.TruncateFrom); err != nil {
			return fmt.Errorf("could not truncate history: %w", err)
		}
	}
	if turn.Append != nil {
		if turn.Append.ChatID != chatID {
			return fmt.Errorf("appended message belongs to chat %s, not %s", turn.Append.ChatID, chatID)
		}
		if err := insertMessage(ctx, tx, turn.Append); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) AppendMessageContent(ctx context.Context, messageID, fragment string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE messages SET content = content || ?, updated_at = ? WHERE id = ?",
		fragment, time.Now().UTC(), messageID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sqliteRepository) ClearPendingMessage(ctx context.Context, chatID, messageID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE chats SET pending_message_id = NULL WHERE id = ? AND pending_message_id = ?",
		chatID, messageID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepository) GetPendingChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	query := "SELECT " + chatColumns + " FROM chats WHERE user_id = ? AND pending_message_id IS NOT NULL"
	return r.queryChats(ctx, query, userID)
}

func (r *sqliteRepository) HasPendingChats(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM chats WHERE user_id = ? AND pending_message_id IS NOT NULL)", userID,
	).Scan(&exists)
	return exists, err
}

func (r *sqliteRepository) ClearAllPending(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE chats SET pending_message_id = NULL WHERE pending_message_id IS NOT NULL")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Preferences ---

func (r *sqliteRepository) GetUserPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	prefs := &model.UserPreferences{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		"SELECT custom_instructions, nickname, occupation, about FROM user_preferences WHERE user_id = ?", userID,
	).Scan(&prefs.CustomInstructions, &prefs.Nickname, &prefs.Occupation, &prefs.About)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return prefs, nil
}

func (r *sqliteRepository) SaveUserPreferences(ctx context.Context, prefs *model.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, custom_instructions, nickname, occupation, about)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			custom_instructions = excluded.custom_instructions,
			nickname = excluded.nickname,
			occupation = excluded.occupation,
			about = excluded.about
	`
	_, err := r.db.ExecContext(ctx, query, prefs.UserID, prefs.CustomInstructions, prefs.Nickname, prefs.Occupation, prefs.About)
	return err
}

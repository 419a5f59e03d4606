package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/serenity-health/serenity/internal/domain"
)

const chatColumns = `id, user_id, title, chat_date, messages, pinned, mh_context, created_at, updated_at`

func (s *Store) InsertChat(ctx context.Context, chat *domain.ChatHistory) error {
	msgs, err := marshalMessages(chat.Messages)
	if err != nil {
		return err
	}
	mc, err := marshalContext(chat.Context)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO chats (id, user_id, title, chat_date, messages, pinned, mh_context, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		chat.ID, chat.UserID, chat.Title, chat.Date, msgs, chat.Pinned, mc, chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

func (s *Store) GetChat(ctx context.Context, userID, chatID string) (*domain.ChatHistory, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+chatColumns+`
		FROM chats
		WHERE id = $1 AND user_id = $2`,
		chatID, userID,
	)
	return scanChat(row)
}

func (s *Store) ListChatsByUser(ctx context.Context, userID string) ([]domain.ChatHistory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+chatColumns+`
		FROM chats
		WHERE user_id = $1
		ORDER BY pinned DESC, chat_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	chats := []domain.ChatHistory{}
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}
	return chats, rows.Err()
}

func (s *Store) UpdateChatTitle(ctx context.Context, userID, chatID, title string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE chats SET title = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		chatID, userID, title,
	)
	if err != nil {
		return fmt.Errorf("update chat title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) SetChatPinned(ctx context.Context, userID, chatID string, pinned bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE chats SET pinned = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		chatID, userID, pinned,
	)
	if err != nil {
		return fmt.Errorf("set chat pinned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) UpdateChatMessages(ctx context.Context, userID, chatID string, msgs []domain.ChatMessage) error {
	b, err := marshalMessages(msgs)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE chats SET messages = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		chatID, userID, b,
	)
	if err != nil {
		return fmt.Errorf("update chat messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) UpdateChatContext(ctx context.Context, userID, chatID string, mc *domain.MentalHealthContext) error {
	b, err := marshalContext(mc)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE chats SET mh_context = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`,
		chatID, userID, b,
	)
	if err != nil {
		return fmt.Errorf("update chat context: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteChat(ctx context.Context, userID, chatID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM chats WHERE id = $1 AND user_id = $2`,
		chatID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanChat(row pgx.Row) (*domain.ChatHistory, error) {
	var (
		chat    domain.ChatHistory
		msgsB   []byte
		ctxB    []byte
	)
	err := row.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Date, &msgsB, &chat.Pinned, &ctxB, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan chat: %w", err)
	}
	if chat.Messages, err = unmarshalMessages(msgsB); err != nil {
		return nil, err
	}
	if chat.Context, err = unmarshalContext(ctxB); err != nil {
		return nil, err
	}
	return &chat, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/repository"
)

// ChatService owns chat lifecycle and message history. Every operation is
// scoped to the owning user so one user can never touch another's chats.
type ChatService struct {
	store *repository.Store
}

func NewChatService(store *repository.Store) *ChatService {
	return &ChatService{store: store}
}

func (s *ChatService) CreateChat(ctx context.Context, userID, title string) (*domain.ChatHistory, error) {
	now := time.Now().UTC()
	if title == "" {
		title = "New chat"
	}
	chat := &domain.ChatHistory{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Date:      now,
		Messages:  []domain.ChatMessage{},
		Context:   domain.NewMentalHealthContext(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// EnsureChat resolves chatID to an existing chat, or creates a fresh one
// when chatID is empty.
func (s *ChatService) EnsureChat(ctx context.Context, userID, chatID string) (*domain.ChatHistory, error) {
	if chatID == "" {
		return s.CreateChat(ctx, userID, "")
	}
	return s.GetChat(ctx, userID, chatID)
}

func (s *ChatService) GetChat(ctx context.Context, userID, chatID string) (*domain.ChatHistory, error) {
	chat, err := s.store.GetChat(ctx, userID, chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]domain.ChatHistory, error) {
	return s.store.ListChatsByUser(ctx, userID)
}

func (s *ChatService) RenameChat(ctx context.Context, userID, chatID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New chat"
	}
	err := s.store.UpdateChatTitle(ctx, userID, chatID, title)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrChatNotFound
	}
	return err
}

func (s *ChatService) SetPinned(ctx context.Context, userID, chatID string, pinned bool) error {
	err := s.store.SetChatPinned(ctx, userID, chatID, pinned)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrChatNotFound
	}
	return err
}

func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	err := s.store.DeleteChat(ctx, userID, chatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrChatNotFound
	}
	return err
}

// History returns the chat's messages oldest first.
func (s *ChatService) History(ctx context.Context, userID, chatID string) ([]domain.ChatMessage, error) {
	chat, err := s.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

// AppendExchange records one user message and the assistant's reply on the
// chat, deriving a title from the first user message when the chat still
// carries the default one.
func (s *ChatService) AppendExchange(ctx context.Context, userID, chatID, userText, aiText string) (*domain.ChatHistory, error) {
	chat, err := s.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chat.Messages = append(chat.Messages,
		domain.ChatMessage{ID: uuid.New().String(), Text: userText, Sender: domain.SenderUser, Timestamp: now},
		domain.ChatMessage{ID: uuid.New().String(), Text: aiText, Sender: domain.SenderAI, Timestamp: now},
	)

	if err := s.store.UpdateChatMessages(ctx, userID, chatID, chat.Messages); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}

	if len(chat.Messages) == 2 && (chat.Title == "" || chat.Title == "New chat") {
		title := deriveTitle(userText)
		if err := s.store.UpdateChatTitle(ctx, userID, chatID, title); err == nil {
			chat.Title = title
		}
	}
	chat.UpdatedAt = now
	return chat, nil
}

// SaveContext persists the chat's accumulated mental health context.
func (s *ChatService) SaveContext(ctx context.Context, userID, chatID string, mc *domain.MentalHealthContext) error {
	err := s.store.UpdateChatContext(ctx, userID, chatID, mc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrChatNotFound
	}
	return err
}

// deriveTitle trims the first user message into a short chat title.
func deriveTitle(text string) string {
	const maxRunes = 48

	title := strings.Join(strings.Fields(text), " ")
	if title == "" {
		return "New chat"
	}
	if utf8.RuneCountInString(title) <= maxRunes {
		return title
	}
	runes := []rune(title)[:maxRunes]
	if i := strings.LastIndex(string(runes), " "); i > maxRunes/2 {
		runes = []rune(string(runes)[:i])
	}
	return string(runes) + "..."
}

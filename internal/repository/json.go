package repository

import (
	"encoding/json"
	"fmt"

	"github.com/serenity-health/serenity/internal/domain"
)

// jsonb codec helpers for the chat row's embedded documents.

func marshalMessages(msgs []domain.ChatMessage) ([]byte, error) {
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return nil, fmt.Errorf("marshal messages: %w", err)
	}
	return b, nil
}

func unmarshalMessages(b []byte) ([]domain.ChatMessage, error) {
	msgs := []domain.ChatMessage{}
	if len(b) == 0 {
		return msgs, nil
	}
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	return msgs, nil
}

func marshalContext(mc *domain.MentalHealthContext) ([]byte, error) {
	if mc == nil {
		return nil, nil
	}
	b, err := json.Marshal(mc)
	if err != nil {
		return nil, fmt.Errorf("marshal context: %w", err)
	}
	return b, nil
}

func unmarshalContext(b []byte) (*domain.MentalHealthContext, error) {
	if len(b) == 0 {
		return nil, nil
	}
	mc := &domain.MentalHealthContext{}
	if err := json.Unmarshal(b, mc); err != nil {
		return nil, fmt.Errorf("unmarshal context: %w", err)
	}
	return mc, nil
}

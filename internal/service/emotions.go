package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/repository"
)

// EmotionService records and summarizes a user's mood check-ins.
type EmotionService struct {
	store *repository.Store
}

func NewEmotionService(store *repository.Store) *EmotionService {
	return &EmotionService{store: store}
}

func (s *EmotionService) Record(ctx context.Context, userID, emotion string, intensity int, notes string) (*domain.EmotionEntry, error) {
	emotion = strings.ToLower(strings.TrimSpace(emotion))
	if emotion == "" {
		emotion = "neutral"
	}
	entry := &domain.EmotionEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Emotion:   emotion,
		Intensity: domain.ClampIntensity(intensity),
		Notes:     notes,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.InsertEmotionEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the user's entries from the last days days, newest first.
// days <= 0 means no time bound.
func (s *EmotionService) List(ctx context.Context, userID string, days, limit int) ([]domain.EmotionEntry, error) {
	return s.store.ListEmotionEntries(ctx, userID, sinceDays(days), pageLimit(limit))
}

func (s *EmotionService) Delete(ctx context.Context, userID, entryID string) error {
	err := s.store.DeleteEmotionEntry(ctx, userID, entryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEntryNotFound
	}
	return err
}

func (s *EmotionService) Summary(ctx context.Context, userID string, days int) (*domain.EmotionSummary, error) {
	since := sinceDays(days)
	aggs, err := s.store.AggregateEmotions(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	summary := &domain.EmotionSummary{
		ByEmotion: make([]domain.EmotionBreakdown, 0, len(aggs)),
		Since:     since,
	}
	for _, a := range aggs {
		summary.TotalEntries += int(a.Count)
		summary.ByEmotion = append(summary.ByEmotion, domain.EmotionBreakdown{
			Emotion:      a.Emotion,
			Count:        int(a.Count),
			AvgIntensity: decimal.NewFromFloat(a.AvgIntensity).StringFixed(2),
		})
	}
	if len(summary.ByEmotion) > 0 {
		summary.Dominant = summary.ByEmotion[0].Emotion
	}
	return summary, nil
}

func sinceDays(days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return time.Now().UTC().AddDate(0, 0, -days)
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		return config.MaxPageSize
	}
	return limit
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/serenity-health/serenity/internal/catalog"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/repository"
)

// WellnessService serves the exercise catalog and tracks completions.
type WellnessService struct {
	store   *repository.Store
	catalog *catalog.Catalog
}

func NewWellnessService(store *repository.Store, cat *catalog.Catalog) *WellnessService {
	return &WellnessService{store: store, catalog: cat}
}

// ListExercises returns the catalog, optionally filtered by category.
func (s *WellnessService) ListExercises(category string) []domain.WellnessExercise {
	if category == "" {
		return s.catalog.Exercises
	}
	out := []domain.WellnessExercise{}
	for _, ex := range s.catalog.Exercises {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out
}

func (s *WellnessService) GetExercise(slug string) (*domain.WellnessExercise, error) {
	ex, ok := s.catalog.Exercise(slug)
	if !ok {
		return nil, domain.ErrExerciseNotFound
	}
	return ex, nil
}

func (s *WellnessService) RecordCompletion(ctx context.Context, userID, slug string, durationSeconds, moodBefore, moodAfter, rating int) (*domain.WellnessCompletion, error) {
	if _, ok := s.catalog.Exercise(slug); !ok {
		return nil, domain.ErrExerciseNotFound
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	completion := &domain.WellnessCompletion{
		ID:              uuid.New().String(),
		UserID:          userID,
		ExerciseSlug:    slug,
		CompletedAt:     time.Now().UTC(),
		DurationSeconds: durationSeconds,
		MoodBefore:      domain.ClampIntensity(moodBefore),
		MoodAfter:       domain.ClampIntensity(moodAfter),
		Rating:          domain.ClampRating(rating),
	}
	if err := s.store.InsertWellnessCompletion(ctx, completion); err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *WellnessService) ListCompletions(ctx context.Context, userID string, days, limit int) ([]domain.WellnessCompletion, error) {
	return s.store.ListWellnessCompletions(ctx, userID, sinceDays(days), pageLimit(limit))
}

func (s *WellnessService) Stats(ctx context.Context, userID string, days int) (*domain.WellnessStats, error) {
	since := sinceDays(days)
	agg, err := s.store.AggregateWellness(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	completionDays, err := s.store.CompletionDays(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return &domain.WellnessStats{
		TotalCompletions: int(agg.TotalCompletions),
		TotalMinutes:     int(agg.TotalSeconds / 60),
		StreakDays:       currentStreak(completionDays, time.Now().UTC()),
		AvgMoodDelta:     decimal.NewFromFloat(agg.AvgMoodDelta).StringFixed(2),
		AvgRating:        decimal.NewFromFloat(agg.AvgRating).StringFixed(2),
	}, nil
}

// currentStreak counts consecutive practice days ending today or yesterday.
// days must be distinct midnights, newest first.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := now.Truncate(24 * time.Hour)
	latest := days[0].UTC().Truncate(24 * time.Hour)
	if latest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		d = d.UTC().Truncate(24 * time.Hour)
		if prev.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		prev = d
	}
	return streak
}

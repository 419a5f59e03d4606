package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/serenity-health/serenity/internal/domain"
)

func (s *Store) InsertWellnessCompletion(ctx context.Context, c *domain.WellnessCompletion) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO wellness_completions (id, user_id, exercise_slug, completed_at, duration_seconds, mood_before, mood_after, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.UserID, c.ExerciseSlug, c.CompletedAt, c.DurationSeconds, c.MoodBefore, c.MoodAfter, c.Rating,
	)
	if err != nil {
		return fmt.Errorf("insert wellness completion: %w", err)
	}
	return nil
}

func (s *Store) ListWellnessCompletions(ctx context.Context, userID string, since time.Time, limit int) ([]domain.WellnessCompletion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, exercise_slug, completed_at, duration_seconds, mood_before, mood_after, rating
		FROM wellness_completions
		WHERE user_id = $1 AND completed_at >= $2
		ORDER BY completed_at DESC
		LIMIT $3`,
		userID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list wellness completions: %w", err)
	}
	defer rows.Close()

	completions := []domain.WellnessCompletion{}
	for rows.Next() {
		var c domain.WellnessCompletion
		if err := rows.Scan(&c.ID, &c.UserID, &c.ExerciseSlug, &c.CompletedAt, &c.DurationSeconds, &c.MoodBefore, &c.MoodAfter, &c.Rating); err != nil {
			return nil, fmt.Errorf("scan wellness completion: %w", err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

type WellnessAggRow struct {
	TotalCompletions int64
	TotalSeconds     int64
	AvgMoodDelta     float64
	AvgRating        float64
}

func (s *Store) AggregateWellness(ctx context.Context, userID string, since time.Time) (WellnessAggRow, error) {
	var a WellnessAggRow
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(duration_seconds), 0),
		       COALESCE(AVG(mood_after - mood_before), 0)::float8,
		       COALESCE(AVG(rating), 0)::float8
		FROM wellness_completions
		WHERE user_id = $1 AND completed_at >= $2`,
		userID, since,
	).Scan(&a.TotalCompletions, &a.TotalSeconds, &a.AvgMoodDelta, &a.AvgRating)
	if err != nil {
		return WellnessAggRow{}, fmt.Errorf("aggregate wellness: %w", err)
	}
	return a, nil
}

// CompletionDays returns the distinct local days with at least one completion,
// newest first, for streak computation.
func (s *Store) CompletionDays(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT date_trunc('day', completed_at) AS day
		FROM wellness_completions
		WHERE user_id = $1 AND completed_at >= $2
		ORDER BY day DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list completion days: %w", err)
	}
	defer rows.Close()

	days := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan completion day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

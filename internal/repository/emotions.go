package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/serenity-health/serenity/internal/domain"
)

func (s *Store) InsertEmotionEntry(ctx context.Context, e *domain.EmotionEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO emotion_entries (id, user_id, emotion, intensity, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Emotion, e.Intensity, e.Notes, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert emotion entry: %w", err)
	}
	return nil
}

func (s *Store) ListEmotionEntries(ctx context.Context, userID string, since time.Time, limit int) ([]domain.EmotionEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, emotion, intensity, notes, recorded_at
		FROM emotion_entries
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC
		LIMIT $3`,
		userID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list emotion entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.EmotionEntry{}
	for rows.Next() {
		var e domain.EmotionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Emotion, &e.Intensity, &e.Notes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan emotion entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEmotionEntry(ctx context.Context, userID, entryID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM emotion_entries WHERE id = $1 AND user_id = $2`,
		entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete emotion entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type EmotionAggRow struct {
	Emotion      string
	Count        int64
	AvgIntensity float64
}

func (s *Store) AggregateEmotions(ctx context.Context, userID string, since time.Time) ([]EmotionAggRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT emotion, COUNT(*), AVG(intensity)::float8
		FROM emotion_entries
		WHERE user_id = $1 AND recorded_at >= $2
		GROUP BY emotion
		ORDER BY COUNT(*) DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate emotions: %w", err)
	}
	defer rows.Close()

	aggs := []EmotionAggRow{}
	for rows.Next() {
		var a EmotionAggRow
		if err := rows.Scan(&a.Emotion, &a.Count, &a.AvgIntensity); err != nil {
			return nil, fmt.Errorf("scan emotion aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

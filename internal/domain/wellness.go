package domain

import (
	"time"
)

// WellnessExercise is a catalog entry; the catalog ships embedded with the
// binary and is never user-editable.
type WellnessExercise struct {
	Slug            string   `json:"slug" yaml:"slug"`
	Name            string   `json:"name" yaml:"name"`
	Category        string   `json:"category" yaml:"category"`
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`
	Description     string   `json:"description" yaml:"description"`
	Steps           []string `json:"steps" yaml:"steps"`
}

type WellnessCompletion struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ExerciseSlug    string    `json:"exercise_slug"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationSeconds int       `json:"duration_seconds"`
	MoodBefore      int       `json:"mood_before"`
	MoodAfter       int       `json:"mood_after"`
	Rating          int       `json:"rating"`
}

type WellnessStats struct {
	TotalCompletions int    `json:"total_completions"`
	TotalMinutes     int    `json:"total_minutes"`
	StreakDays       int    `json:"streak_days"`
	AvgMoodDelta     string `json:"avg_mood_delta"`
	AvgRating        string `json:"avg_rating"`
}

// ClampRating forces an exercise rating into the 1..5 scale.
func ClampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

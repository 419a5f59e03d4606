package domain

import (
	"time"
)

type EmotionEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Emotion   string    `json:"emotion"`
	Intensity int       `json:"intensity"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// EmotionType is a catalog entry the client renders as a selectable mood.
type EmotionType struct {
	Slug     string   `json:"slug" yaml:"slug"`
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"-" yaml:"keywords"`
}

// EmotionScore is one ranked candidate from the analysis backend.
type EmotionScore struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// MentalHealthCategory buckets a primary emotion for downstream care logic.
type MentalHealthCategory string

const (
	CategoryDepressionRisk  MentalHealthCategory = "depression_risk"
	CategoryAnxietyRisk     MentalHealthCategory = "anxiety_risk"
	CategoryAngerManagement MentalHealthCategory = "anger_management"
	CategoryPositiveMood    MentalHealthCategory = "positive_mood"
	CategoryStableMood      MentalHealthCategory = "stable_mood"
	CategoryStressResponse  MentalHealthCategory = "stress_response"
	CategoryNeutralMood     MentalHealthCategory = "neutral_mood"
	CategoryOtherEmotion    MentalHealthCategory = "other_emotion"
	CategoryUnknown         MentalHealthCategory = "unknown"
)

type EmotionAnalysis struct {
	Emotions         []EmotionScore       `json:"emotions"`
	Primary          string               `json:"primary_emotion"`
	Category         MentalHealthCategory `json:"mental_health_category"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
}

// EmotionSummary aggregates a user's entries over a window.
type EmotionSummary struct {
	TotalEntries int                `json:"total_entries"`
	Dominant     string             `json:"dominant_emotion,omitempty"`
	ByEmotion    []EmotionBreakdown `json:"by_emotion"`
	Since        time.Time          `json:"since"`
}

type EmotionBreakdown struct {
	Emotion      string `json:"emotion"`
	Count        int    `json:"count"`
	AvgIntensity string `json:"avg_intensity"`
}

package domain

import (
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistory struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Title     string              `json:"title"`
	Date      time.Time           `json:"date"`
	Messages  []ChatMessage       `json:"messages"`
	Pinned    bool                `json:"pinned"`
	Context   *MentalHealthContext `json:"mental_health_context,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// MoodEntry is a single mood observation accumulated on a chat.
// Intensity is clamped to [1,10] before it is stored.
type MoodEntry struct {
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"`
	Timestamp time.Time `json:"timestamp"`
}

type SafetyPlanSnapshot struct {
	WarningSigns         []string `json:"warning_signs"`
	CopingStrategies     []string `json:"coping_strategies"`
	SupportContacts      []string `json:"support_contacts"`
	ProfessionalContacts []string `json:"professional_contacts"`
}

// MentalHealthContext accumulates what the assistant has learned in a chat:
// moods, mentioned symptoms, techniques and resources already offered, the
// last crisis check and per-topic sensitivity scores (0..10).
type MentalHealthContext struct {
	MoodEntries           []MoodEntry         `json:"mood_entries"`
	MentionedSymptoms     []string            `json:"mentioned_symptoms"`
	RecommendedTechniques []string            `json:"recommended_techniques"`
	ResourcesShared       []string            `json:"resources_shared"`
	LastCrisisCheck       *time.Time          `json:"last_crisis_check,omitempty"`
	SensitivityScores     map[string]float64  `json:"sensitivity_scores"`
	SafetyPlan            *SafetyPlanSnapshot `json:"safety_plan,omitempty"`
}

func NewMentalHealthContext() *MentalHealthContext {
	return &MentalHealthContext{
		MoodEntries:           []MoodEntry{},
		MentionedSymptoms:     []string{},
		RecommendedTechniques: []string{},
		ResourcesShared:       []string{},
		SensitivityScores:     map[string]float64{},
	}
}

// ClampIntensity forces a mood/emotion intensity into the 1..10 scale.
func ClampIntensity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

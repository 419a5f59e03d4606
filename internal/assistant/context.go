package assistant

import (
	"time"

	"github.com/serenity-health/serenity/internal/analyzer"
	"github.com/serenity-health/serenity/internal/domain"
)

const (
	maxMoodEntries = 20
	maxSymptoms    = 20
	maxTechniques  = 10
	maxResources   = 10
)

// ContextUpdate is what one processed message contributes to the chat's
// accumulated mental health context.
type ContextUpdate struct {
	Emotion   string
	Intensity int
	Analysis  analyzer.Result
	Crisis    analyzer.CrisisCheck
	Resources []string
}

// AccumulateContext folds the update into the chat context in place,
// keeping every list bounded and deduplicated.
func AccumulateContext(mc *domain.MentalHealthContext, up ContextUpdate) {
	if mc == nil {
		return
	}
	now := time.Now().UTC()

	if mc.SensitivityScores == nil {
		mc.SensitivityScores = map[string]float64{}
	}

	if up.Emotion != "" {
		mc.MoodEntries = append(mc.MoodEntries, domain.MoodEntry{
			Mood:      up.Emotion,
			Intensity: domain.ClampIntensity(up.Intensity),
			Timestamp: now,
		})
		if len(mc.MoodEntries) > maxMoodEntries {
			mc.MoodEntries = mc.MoodEntries[len(mc.MoodEntries)-maxMoodEntries:]
		}
	}

	for _, match := range up.Analysis.Categories {
		if match.Category == analyzer.CategoryPositive {
			continue
		}
		mc.MentionedSymptoms = appendBounded(mc.MentionedSymptoms, string(match.Category), maxSymptoms)

		score := float64(match.Weight * len(match.Keywords))
		if score > 10 {
			score = 10
		}
		if score > mc.SensitivityScores[string(match.Category)] {
			mc.SensitivityScores[string(match.Category)] = score
		}
	}

	for _, t := range up.Analysis.Techniques {
		mc.RecommendedTechniques = appendBounded(mc.RecommendedTechniques, t, maxTechniques)
	}
	for _, r := range up.Resources {
		mc.ResourcesShared = appendBounded(mc.ResourcesShared, r, maxResources)
	}

	if up.Crisis.Detected {
		mc.LastCrisisCheck = &now
		score := up.Crisis.Confidence * 10
		if score > mc.SensitivityScores["crisis"] {
			mc.SensitivityScores["crisis"] = score
		}
	}
}

func appendBounded(dst []string, val string, max int) []string {
	for _, d := range dst {
		if d == val {
			return dst
		}
	}
	dst = append(dst, val)
	if len(dst) > max {
		dst = dst[len(dst)-max:]
	}
	return dst
}

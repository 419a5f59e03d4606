package emotion

import (
	"strings"

	"github.com/serenity-health/serenity/internal/domain"
)

// categoryTerms maps substring markers to mental-health categories. Order
// matters: earlier rows win.
var categoryTerms = []struct {
	terms    []string
	category domain.MentalHealthCategory
}{
	{[]string{"sad", "depress", "grief", "sorrow"}, domain.CategoryDepressionRisk},
	{[]string{"anx", "fear", "panic", "worry"}, domain.CategoryAnxietyRisk},
	{[]string{"ang", "rage", "fury", "irrit"}, domain.CategoryAngerManagement},
	{[]string{"happy", "joy", "content", "pleased"}, domain.CategoryPositiveMood},
	{[]string{"calm", "relax", "peaceful"}, domain.CategoryStableMood},
	{[]string{"stress", "overwhelm", "pressure"}, domain.CategoryStressResponse},
	{[]string{"neutral", "normal"}, domain.CategoryNeutralMood},
}

// CategoryFor buckets an emotion label. Empty input maps to unknown; any
// unrecognized emotion maps to other_emotion, so the result is always a
// valid category.
func CategoryFor(emotion string) domain.MentalHealthCategory {
	if emotion == "" {
		return domain.CategoryUnknown
	}
	lower := strings.ToLower(emotion)
	for _, row := range categoryTerms {
		for _, term := range row.terms {
			if strings.Contains(lower, term) {
				return row.category
			}
		}
	}
	return domain.CategoryOtherEmotion
}

// RequiresExtraCare reports whether a category should escalate the
// assistant's care level.
func RequiresExtraCare(category domain.MentalHealthCategory) bool {
	switch category {
	case domain.CategoryDepressionRisk, domain.CategoryAnxietyRisk, domain.CategoryStressResponse:
		return true
	}
	return false
}

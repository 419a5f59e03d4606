package emotion

import (
	"testing"

	"github.com/serenity-health/serenity/internal/domain"
)

func testEmotions() []domain.EmotionType {
	return []domain.EmotionType{
		{Slug: "happy", Label: "Happy", Keywords: []string{"happy", "joy", "great"}},
		{Slug: "sad", Label: "Sad", Keywords: []string{"sad", "crying", "down", "lonely"}},
		{Slug: "anxious", Label: "Anxious", Keywords: []string{"anxious", "panic", "worried"}},
		{Slug: "neutral", Label: "Neutral", Keywords: []string{"neutral"}},
	}
}

func TestAnalyze_RanksAndNormalizes(t *testing.T) {
	a := NewAnalyzer(testEmotions())

	got := a.Analyze("I've been sad and crying, feeling lonely and a bit worried", 3)

	if got.Primary != "sad" {
		t.Fatalf("Primary = %q, want sad", got.Primary)
	}
	if got.Category != domain.CategoryDepressionRisk {
		t.Fatalf("Category = %q, want %q", got.Category, domain.CategoryDepressionRisk)
	}
	if len(got.Emotions) == 0 || got.Emotions[0].Emotion != "sad" {
		t.Fatalf("Emotions = %+v", got.Emotions)
	}
	// 3 sad hits + 1 anxious hit: 0.75 / 0.25.
	if got.Emotions[0].Confidence != 0.75 {
		t.Fatalf("top confidence = %v, want 0.75", got.Emotions[0].Confidence)
	}
	sum := 0.0
	for _, es := range got.Emotions {
		sum += es.Confidence
	}
	if sum > 1.0001 {
		t.Fatalf("confidence sum = %v, want <= 1", sum)
	}
}

func TestAnalyze_NoHitsIsNeutral(t *testing.T) {
	a := NewAnalyzer(testEmotions())

	got := a.Analyze("the meeting is at three", 3)
	if got.Primary != "neutral" {
		t.Fatalf("Primary = %q, want neutral", got.Primary)
	}
	if got.Category != domain.CategoryNeutralMood {
		t.Fatalf("Category = %q, want neutral_mood", got.Category)
	}
	if len(got.Emotions) != 1 || got.Emotions[0].Confidence != 0 {
		t.Fatalf("Emotions = %+v", got.Emotions)
	}
}

func TestCategoryFor_IsTotal(t *testing.T) {
	cases := []struct {
		emotion string
		want    domain.MentalHealthCategory
	}{
		{"sad", domain.CategoryDepressionRisk},
		{"anxious", domain.CategoryAnxietyRisk},
		{"fearful", domain.CategoryAnxietyRisk},
		{"angry", domain.CategoryAngerManagement},
		{"happy", domain.CategoryPositiveMood},
		{"calm", domain.CategoryStableMood},
		{"stressed", domain.CategoryStressResponse},
		{"neutral", domain.CategoryNeutralMood},
		{"bewildered", domain.CategoryOtherEmotion},
		{"", domain.CategoryUnknown},
	}
	for _, tc := range cases {
		if got := CategoryFor(tc.emotion); got != tc.want {
			t.Errorf("CategoryFor(%q) = %q, want %q", tc.emotion, got, tc.want)
		}
	}
}

func TestRequiresExtraCare(t *testing.T) {
	for _, cat := range []domain.MentalHealthCategory{
		domain.CategoryDepressionRisk, domain.CategoryAnxietyRisk, domain.CategoryStressResponse,
	} {
		if !RequiresExtraCare(cat) {
			t.Errorf("RequiresExtraCare(%q) = false, want true", cat)
		}
	}
	for _, cat := range []domain.MentalHealthCategory{
		domain.CategoryPositiveMood, domain.CategoryStableMood, domain.CategoryNeutralMood, domain.CategoryOtherEmotion,
	} {
		if RequiresExtraCare(cat) {
			t.Errorf("RequiresExtraCare(%q) = true, want false", cat)
		}
	}
}

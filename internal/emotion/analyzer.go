// Package emotion scores text against per-emotion keyword lexicons and maps
// the primary emotion to a mental-health category.
package emotion

import (
	"sort"
	"strings"
	"time"

	"github.com/serenity-health/serenity/internal/domain"
)

const defaultTopK = 3

// Analyzer ranks emotions for a piece of text using the catalog lexicons.
type Analyzer struct {
	emotions []domain.EmotionType
}

func NewAnalyzer(emotions []domain.EmotionType) *Analyzer {
	return &Analyzer{emotions: emotions}
}

// Analyze counts lexicon hits per emotion, normalizes counts into a
// confidence ranking and maps the winner to its mental-health category.
// Text with no lexicon hits comes back neutral at zero confidence.
func (a *Analyzer) Analyze(text string, topK int) domain.EmotionAnalysis {
	start := time.Now()
	if topK <= 0 {
		topK = defaultTopK
	}
	lower := strings.ToLower(text)

	type hit struct {
		slug  string
		count int
	}
	var hits []hit
	total := 0
	for _, em := range a.emotions {
		count := 0
		for _, kw := range em.Keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > 0 {
			hits = append(hits, hit{slug: em.Slug, count: count})
			total += count
		}
	}

	analysis := domain.EmotionAnalysis{Emotions: []domain.EmotionScore{}}
	if total == 0 {
		analysis.Primary = "neutral"
		analysis.Category = domain.CategoryNeutralMood
		analysis.Emotions = append(analysis.Emotions, domain.EmotionScore{Emotion: "neutral", Confidence: 0})
		analysis.ProcessingTimeMs = time.Since(start).Milliseconds()
		return analysis
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].slug < hits[j].slug
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	for _, h := range hits {
		analysis.Emotions = append(analysis.Emotions, domain.EmotionScore{
			Emotion:    h.slug,
			Confidence: float64(h.count) / float64(total),
		})
	}
	analysis.Primary = analysis.Emotions[0].Emotion
	analysis.Category = CategoryFor(analysis.Primary)
	analysis.ProcessingTimeMs = time.Since(start).Milliseconds()
	return analysis
}

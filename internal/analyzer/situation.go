package analyzer

import (
	"sort"
	"strings"
)

type situationDef struct {
	keywords []string
	emotions []string
	needs    []string
}

var situationPatterns = map[string]situationDef{
	"overwhelm": {
		keywords: []string{"overwhelmed", "too much", "can't handle", "drowning", "catch my breath", "everything feels"},
		emotions: []string{"overwhelmed", "exhausted", "drowning"},
		needs:    []string{"breathing space", "break things down", "one step at a time", "grounding"},
	},
	"loneliness": {
		keywords: []string{"alone", "nobody understands", "no friends", "isolated", "disconnected", "left behind", "left out"},
		emotions: []string{"lonely", "isolated", "misunderstood", "left out"},
		needs:    []string{"connection", "understanding", "validation of struggle", "not alone"},
	},
	"anxiety": {
		keywords: []string{"anxious", "worried", "panic", "racing thoughts", "can't stop thinking", "what if", "nervous"},
		emotions: []string{"anxious", "panicked", "worried", "fearful"},
		needs:    []string{"calming techniques", "grounding", "reassurance", "thought management"},
	},
	"numbness": {
		keywords: []string{"numb", "empty", "don't feel", "going through motions", "blank", "feel nothing"},
		emotions: []string{"numb", "empty", "disconnected", "absent"},
		needs:    []string{"gentle reconnection", "professional support", "tiny steps", "validation"},
	},
	"depression": {
		keywords: []string{"depressed", "hopeless", "worthless", "can't get up", "no point", "tired of", "give up"},
		emotions: []string{"depressed", "hopeless", "exhausted", "defeated"},
		needs:    []string{"hope without dismissal", "professional support", "gentle encouragement", "validation"},
	},
	"fear": {
		keywords: []string{"scared", "terrified", "afraid", "fear", "worried about", "nightmare"},
		emotions: []string{"scared", "terrified", "fearful", "worried"},
		needs:    []string{"safety", "reassurance", "coping strategies", "reality check"},
	},
	"anger": {
		keywords: []string{"angry", "pissed", "furious", "rage", "hate", "frustrated", "mad"},
		emotions: []string{"angry", "frustrated", "resentful", "furious"},
		needs:    []string{"validation of anger", "safe expression", "underlying needs", "permission to feel"},
	},
}

type Situation struct {
	Category       string
	PrimaryEmotion string
	Emotions       []string
	Needs          []string
	Confidence     float64
}

// DetectSituation scores every situation pattern against the message: a full
// keyword hit scores 2, a partial word overlap on multi-word keywords scores
// 1. Confidence is score/10 capped at 1.0. Returns false when nothing scores.
func DetectSituation(message string) (Situation, bool) {
	lower := strings.ToLower(message)

	type scored struct {
		category string
		score    int
	}
	var scores []scored
	for category, def := range situationPatterns {
		score := 0
		for _, kw := range def.keywords {
			if strings.Contains(lower, kw) {
				score += 2
			}
		}
		for _, kw := range def.keywords {
			words := strings.Fields(kw)
			if len(words) < 2 {
				continue
			}
			for _, w := range words {
				if strings.Contains(lower, w) {
					score++
					break
				}
			}
		}
		if score > 0 {
			scores = append(scores, scored{category: category, score: score})
		}
	}
	if len(scores) == 0 {
		return Situation{}, false
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].category < scores[j].category
	})

	best := scores[0]
	def := situationPatterns[best.category]
	conf := float64(best.score) / 10
	if conf > 1 {
		conf = 1
	}
	return Situation{
		Category:       best.category,
		PrimaryEmotion: def.emotions[0],
		Emotions:       def.emotions,
		Needs:          def.needs,
		Confidence:     conf,
	}, true
}

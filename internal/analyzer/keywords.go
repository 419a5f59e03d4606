// Package analyzer scans user messages against fixed keyword lists to
// produce a coarse 0-10 severity score, a situation read and a query type.
// Everything here is deterministic and stateless.
package analyzer

import (
	"sort"
	"strings"

	"github.com/serenity-health/serenity/internal/config"
)

type Category string

const (
	CategoryAnxiety    Category = "anxiety"
	CategoryDepression Category = "depression"
	CategoryCrisis     Category = "crisis"
	CategoryTrauma     Category = "trauma"
	CategorySleep      Category = "sleep"
	CategorySubstance  Category = "substance"
	CategoryPositive   Category = "positive"
)

type categoryDef struct {
	weight   int
	keywords []string
}

var categories = map[Category]categoryDef{
	CategoryAnxiety: {weight: 2, keywords: []string{
		"anxious", "anxiety", "panic", "panicking", "worried", "worry",
		"nervous", "racing thoughts", "on edge", "restless", "dread",
		"can't stop thinking", "what if",
	}},
	CategoryDepression: {weight: 2, keywords: []string{
		"depressed", "depression", "hopeless", "worthless", "empty",
		"no energy", "can't get up", "no point", "tired of everything",
		"nothing matters", "give up",
	}},
	CategoryCrisis: {weight: 3, keywords: []string{
		"suicide", "suicidal", "kill myself", "end it", "end my life",
		"self harm", "self-harm", "hurt myself", "cutting", "overdose",
		"want to die", "better off dead", "no reason to live", "can't go on",
	}},
	CategoryTrauma: {weight: 2, keywords: []string{
		"trauma", "flashback", "flashbacks", "nightmare", "abuse",
		"assault", "ptsd", "triggered",
	}},
	CategorySleep: {weight: 1, keywords: []string{
		"insomnia", "can't sleep", "sleepless", "awake all night",
		"haven't slept", "barely sleep",
	}},
	CategorySubstance: {weight: 2, keywords: []string{
		"drinking too much", "alcohol", "drunk", "drugs", "getting high",
		"relapse", "relapsed", "withdrawal", "using again",
	}},
	CategoryPositive: {weight: -1, keywords: []string{
		"better", "grateful", "hopeful", "proud", "improving", "calmer",
		"good day", "happier", "relieved",
	}},
}

// techniques suggested per dominant category. Display strings, not slugs.
var techniquesByCategory = map[Category][]string{
	CategoryAnxiety:    {"4-7-8 breathing", "5-4-3-2-1 grounding", "box breathing"},
	CategoryDepression: {"behavioral activation", "gratitude journal", "one small task"},
	CategoryCrisis:     {"call or text 988", "open your safety plan", "stay with someone you trust"},
	CategoryTrauma:     {"grounding", "safe place visualization", "professional support"},
	CategorySleep:      {"consistent wake time", "screen-free wind down", "4-7-8 breathing"},
	CategorySubstance:  {"urge surfing", "call a support line", "remove what you can"},
	CategoryPositive:   {"savoring the moment", "gratitude journal"},
}

type CategoryMatch struct {
	Category Category
	Keywords []string
	Weight   int
}

type Result struct {
	Severity   int
	Categories []CategoryMatch
	Dominant   Category
	Techniques []string
	// ResourceCategory keys the support-resource catalog.
	ResourceCategory string
}

// Analyze lower-cases the message and checks substring membership against
// every category list, summing weighted hit counts into a severity score.
// Any crisis hit floors the score at the crisis severity; positive hits
// subtract. The score is clamped to [0, SeverityMax].
func Analyze(message string) Result {
	lower := strings.ToLower(message)

	res := Result{}
	score := 0
	crisisHit := false
	bestWeighted := 0

	for cat, def := range categories {
		var hits []string
		for _, kw := range def.keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sort.Strings(hits)
		res.Categories = append(res.Categories, CategoryMatch{Category: cat, Keywords: hits, Weight: def.weight})
		score += def.weight * len(hits)
		if cat == CategoryCrisis {
			crisisHit = true
		}
		if cat != CategoryPositive && def.weight*len(hits) > bestWeighted {
			bestWeighted = def.weight * len(hits)
			res.Dominant = cat
		}
	}

	sort.Slice(res.Categories, func(i, j int) bool {
		wi := res.Categories[i].Weight * len(res.Categories[i].Keywords)
		wj := res.Categories[j].Weight * len(res.Categories[j].Keywords)
		if wi != wj {
			return wi > wj
		}
		return res.Categories[i].Category < res.Categories[j].Category
	})

	if score < 0 {
		score = 0
	}
	if score > config.SeverityMax {
		score = config.SeverityMax
	}
	if crisisHit && score < config.CrisisSeverityFloor {
		score = config.CrisisSeverityFloor
	}
	res.Severity = score

	if res.Dominant != "" {
		res.Techniques = techniquesByCategory[res.Dominant]
		res.ResourceCategory = string(res.Dominant)
	} else {
		res.ResourceCategory = "general"
	}
	return res
}

// MatchedKeywords flattens every matched keyword across categories.
func (r Result) MatchedKeywords() []string {
	var out []string
	for _, cm := range r.Categories {
		out = append(out, cm.Keywords...)
	}
	return out
}

// HasCategory reports whether the given category matched.
func (r Result) HasCategory(cat Category) bool {
	for _, cm := range r.Categories {
		if cm.Category == cat {
			return true
		}
	}
	return false
}

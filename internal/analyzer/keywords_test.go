package analyzer

import (
	"testing"
)

func TestAnalyze_CrisisKeywordFloorsSeverity(t *testing.T) {
	messages := []string{
		"I've been thinking about suicide a lot",
		"sometimes I just want to die",
		"I keep wanting to hurt myself",
		"maybe everyone would be better off dead without me",
		"I started cutting again last week",
		"i can't go on like this anymore",
		"I want to end it",
		"honestly I want to die but today was a good day and I felt grateful",
	}
	for _, msg := range messages {
		res := Analyze(msg)
		if res.Severity < 7 {
			t.Errorf("Analyze(%q).Severity = %d, want >= 7", msg, res.Severity)
		}
		if !res.HasCategory(CategoryCrisis) {
			t.Errorf("Analyze(%q) did not match crisis category", msg)
		}
	}
}

func TestAnalyze_SeverityBounds(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		min  int
		max  int
	}{
		{"empty", "", 0, 0},
		{"benign", "what's the weather like today", 0, 0},
		{"positive only stays at zero", "feeling grateful and hopeful, today was a good day", 0, 0},
		{"piled up keywords clamp at ten", "suicidal, want to die, self harm, overdose, hopeless, worthless, depressed, anxious, panic, flashbacks, insomnia, relapse", 10, 10},
		{"mild anxiety", "been pretty anxious lately", 1, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Analyze(tc.msg)
			if res.Severity < tc.min || res.Severity > tc.max {
				t.Fatalf("Analyze(%q).Severity = %d, want in [%d,%d]", tc.msg, res.Severity, tc.min, tc.max)
			}
		})
	}
}

func TestAnalyze_DominantCategoryAndSuggestions(t *testing.T) {
	res := Analyze("constant panic and racing thoughts, I'm so anxious I can't sleep")

	if res.Dominant != CategoryAnxiety {
		t.Fatalf("Dominant = %q, want %q", res.Dominant, CategoryAnxiety)
	}
	if len(res.Techniques) == 0 {
		t.Fatal("expected technique suggestions for anxiety")
	}
	if res.ResourceCategory != "anxiety" {
		t.Fatalf("ResourceCategory = %q, want anxiety", res.ResourceCategory)
	}
	if len(res.MatchedKeywords()) < 3 {
		t.Fatalf("MatchedKeywords() = %v, want at least 3 hits", res.MatchedKeywords())
	}
}

func TestAnalyze_NoMatchFallsBackToGeneral(t *testing.T) {
	res := Analyze("tell me about the history of jazz")
	if res.Severity != 0 {
		t.Fatalf("Severity = %d, want 0", res.Severity)
	}
	if res.ResourceCategory != "general" {
		t.Fatalf("ResourceCategory = %q, want general", res.ResourceCategory)
	}
	if res.Dominant != "" {
		t.Fatalf("Dominant = %q, want empty", res.Dominant)
	}
}

func TestDetectSituation(t *testing.T) {
	cases := []struct {
		name     string
		msg      string
		wantCat  string
		wantHit  bool
	}{
		{"overwhelm", "everything feels like too much, I'm drowning and can't handle it", "overwhelm", true},
		{"loneliness", "I feel so alone, nobody understands me", "loneliness", true},
		{"anger", "I'm so furious, full of rage at everyone", "anger", true},
		{"no situation", "what time is it", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sit, ok := DetectSituation(tc.msg)
			if ok != tc.wantHit {
				t.Fatalf("DetectSituation(%q) ok = %v, want %v", tc.msg, ok, tc.wantHit)
			}
			if !ok {
				return
			}
			if sit.Category != tc.wantCat {
				t.Fatalf("Category = %q, want %q", sit.Category, tc.wantCat)
			}
			if sit.Confidence <= 0 || sit.Confidence > 1 {
				t.Fatalf("Confidence = %v, want in (0,1]", sit.Confidence)
			}
			if sit.PrimaryEmotion == "" || len(sit.Needs) == 0 {
				t.Fatalf("situation missing emotion/needs: %+v", sit)
			}
		})
	}
}

func TestCheckCrisis(t *testing.T) {
	crit := CheckCrisis("I think about suicide every night")
	if !crit.Detected || crit.Severity != CrisisCritical || !crit.Immediate {
		t.Fatalf("critical check = %+v", crit)
	}
	if crit.Confidence != 0.95 {
		t.Fatalf("critical confidence = %v, want 0.95", crit.Confidence)
	}

	mod := CheckCrisis("I just can't take it anymore, there's no hope left")
	if !mod.Detected || mod.Severity != CrisisModerate || mod.Immediate {
		t.Fatalf("moderate check = %+v", mod)
	}
	if mod.Confidence != 0.6 {
		t.Fatalf("moderate confidence = %v, want 0.6", mod.Confidence)
	}

	none := CheckCrisis("had an okay day, bit tired")
	if none.Detected || none.Severity != CrisisNone {
		t.Fatalf("none check = %+v", none)
	}
}

func TestClassifyQueryType(t *testing.T) {
	cases := []struct {
		msg  string
		want QueryType
	}{
		{"hey there", QueryConversational},
		{"thanks!", QueryConversational},
		{"I feel like everything is falling apart", QueryEmotional},
		{"What are the symptoms of burnout?", QueryFactual},
		{"How do I build a better sleep routine?", QueryPractical},
		{"Is journaling actually useful?", QueryPractical},
		{"work has been rough lately", QueryEmotional},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			if got := ClassifyQueryType(tc.msg); got != tc.want {
				t.Fatalf("ClassifyQueryType(%q) = %q, want %q", tc.msg, got, tc.want)
			}
		})
	}
}

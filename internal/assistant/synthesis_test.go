package assistant

import (
	"strings"
	"testing"

	"github.com/serenity-health/serenity/internal/analyzer"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/retrieval"
	"github.com/serenity-health/serenity/internal/service"
)

func TestBuildMessages_Composition(t *testing.T) {
	sit := analyzer.Situation{
		Category:       "overwhelm",
		PrimaryEmotion: "stressed",
		Needs:          []string{"prioritization support", "validation"},
	}
	in := PromptInput{
		Message:   "Everything is piling up",
		QueryType: analyzer.QueryEmotional,
		Severity:  3,
		Category:  domain.CategoryStressResponse,
		Situation: &sit,
		Snippets: []retrieval.Snippet{
			{Title: "Overwhelm triage", Text: "Pick the single most urgent thing and park the rest."},
		},
		Memory: SessionContext{
			Summary:  "They had a stressful week at work.",
			Critical: []string{"Name: Dana"},
			Recent: []memMessage{
				{Role: service.RoleUser, Content: "earlier message"},
				{Role: service.RoleAssistant, Content: "earlier reply"},
			},
		},
	}

	msgs := BuildMessages(in)
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}

	sys := msgs[0]
	if sys.Role != service.RoleSystem {
		t.Fatalf("first role = %s, want system", sys.Role)
	}
	for _, want := range []string{
		"Serenity",
		"buried by everything",
		"prioritization support",
		"Name: Dana",
		"They had a stressful week at work.",
		"Overwhelm triage",
		"especially gentle", // stress_response asks for extra care
	} {
		if !strings.Contains(sys.Content, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	if msgs[1].Content != "earlier message" || msgs[2].Content != "earlier reply" {
		t.Error("history not carried in order")
	}
	last := msgs[len(msgs)-1]
	if last.Role != service.RoleUser || last.Content != "Everything is piling up" {
		t.Errorf("last message = %+v, want the user text", last)
	}
}

func TestBuildMessages_MinimalInput(t *testing.T) {
	msgs := BuildMessages(PromptInput{
		Message:   "hey",
		QueryType: analyzer.QueryConversational,
		Category:  domain.CategoryNeutralMood,
	})
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if strings.Contains(msgs[0].Content, "Remember about this person") {
		t.Error("empty memory should not add a facts block")
	}
	if strings.Contains(msgs[0].Content, "Background you may draw on") {
		t.Error("no snippets should mean no background block")
	}
}

func TestSnippetLine_Truncates(t *testing.T) {
	long := strings.Repeat("calm breathing practice ", 20) // well past the cap
	got := snippetLine(retrieval.Snippet{Title: "Breathing", Text: long})
	if !strings.HasPrefix(got, "Breathing: ") {
		t.Errorf("line = %q, want title prefix", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("line = %q, want ellipsis suffix", got)
	}
	if len(got) > 320 {
		t.Errorf("line length = %d, want bounded", len(got))
	}
}

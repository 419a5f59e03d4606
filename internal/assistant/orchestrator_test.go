package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/serenity-health/serenity/internal/catalog"
	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/emotion"
	"github.com/serenity-health/serenity/internal/retrieval"
	"github.com/serenity-health/serenity/internal/service"
)

func newTestOrchestrator(fake *fakeCompleter) *Orchestrator {
	idx := retrieval.NewIndex([]catalog.Document{
		{ID: "grounding", Title: "Grounding basics", Text: "Grounding techniques help with anxiety and panic by anchoring attention in the senses."},
		{ID: "sleep", Title: "Sleep hygiene", Text: "A regular sleep schedule and a wind down routine improve rest."},
	})
	emotions := emotion.NewAnalyzer([]domain.EmotionType{
		{Slug: "anxious", Label: "Anxious", Keywords: []string{"anxious", "worried", "panic"}},
		{Slug: "sad", Label: "Sad", Keywords: []string{"sad", "down", "hopeless"}},
	})
	cache := service.NewResponseCache(config.ResponseCacheTTL, 10)
	return NewOrchestrator(fake, NewMemory(nil), retrieval.NewRetriever(idx, nil), emotions, cache, nil)
}

func TestProcess_EmptyMessage(t *testing.T) {
	o := newTestOrchestrator(&fakeCompleter{reply: "hi"})
	_, err := o.Process(context.Background(), "s1", "   ", domain.NewMentalHealthContext())
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestProcess_CrisisShortCircuit(t *testing.T) {
	fake := &fakeCompleter{reply: "should never be used"}
	o := newTestOrchestrator(fake)
	mc := domain.NewMentalHealthContext()

	reply, err := o.Process(context.Background(), "s1", "I want to die", mc)
	if err != nil {
		t.Fatal(err)
	}

	if !reply.CrisisDetected {
		t.Error("CrisisDetected = false, want true")
	}
	if reply.QueryType != QueryTypeCrisis {
		t.Errorf("QueryType = %q, want %q", reply.QueryType, QueryTypeCrisis)
	}
	if reply.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", reply.Confidence)
	}
	if diff := cmp.Diff([]string{"crisis_protocol"}, reply.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(reply.Response, "988") {
		t.Error("crisis reply must mention 988")
	}
	if fake.callCount() != 0 {
		t.Errorf("model calls = %d, want 0", fake.callCount())
	}
	if mc.LastCrisisCheck == nil {
		t.Error("LastCrisisCheck not stamped")
	}
	if mc.SensitivityScores["crisis"] == 0 {
		t.Error("crisis sensitivity not recorded")
	}
}

func TestProcess_EmotionalFlow(t *testing.T) {
	fake := &fakeCompleter{reply: "That sounds really heavy. I'm here with you."}
	o := newTestOrchestrator(fake)
	mc := domain.NewMentalHealthContext()

	reply, err := o.Process(context.Background(), "s1", "I feel so anxious about everything lately", mc)
	if err != nil {
		t.Fatal(err)
	}

	if reply.Response != fake.reply {
		t.Errorf("Response = %q, want model reply", reply.Response)
	}
	if reply.QueryType != "emotional" {
		t.Errorf("QueryType = %q, want emotional", reply.QueryType)
	}
	if reply.CrisisDetected {
		t.Error("CrisisDetected = true, want false")
	}
	if reply.ModelUsed != "fake-model" {
		t.Errorf("ModelUsed = %q", reply.ModelUsed)
	}

	// the prompt opens with the system persona and ends with the message
	if len(fake.last) < 2 {
		t.Fatalf("model got %d messages", len(fake.last))
	}
	if fake.last[0].Role != service.RoleSystem || !strings.Contains(fake.last[0].Content, "Serenity") {
		t.Error("first message is not the system persona")
	}
	if fake.last[len(fake.last)-1].Content != "I feel so anxious about everything lately" {
		t.Error("last message is not the user text")
	}

	// the exchange landed in memory and the context accumulated a mood
	if got := o.Memory().Context("s1"); len(got.Recent) != 2 {
		t.Errorf("memory recorded %d messages, want 2", len(got.Recent))
	}
	if len(mc.MoodEntries) != 1 || mc.MoodEntries[0].Mood != "anxious" {
		t.Errorf("MoodEntries = %+v, want one anxious entry", mc.MoodEntries)
	}
}

func TestProcess_ApologyWhenModelFails(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("model down")}
	o := newTestOrchestrator(fake)

	reply, err := o.Process(context.Background(), "s1", "I feel sad today", domain.NewMentalHealthContext())
	if err != nil {
		t.Fatalf("err = %v, want nil (apology is in-band)", err)
	}
	if reply.Response != apologyResponse {
		t.Errorf("Response = %q, want apology", reply.Response)
	}
	if reply.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", reply.Confidence)
	}
}

func TestProcess_CachesFactualQueries(t *testing.T) {
	fake := &fakeCompleter{reply: "Anxiety is the body's alarm system firing without present danger."}
	o := newTestOrchestrator(fake)
	mc := domain.NewMentalHealthContext()

	first, err := o.Process(context.Background(), "s1", "What is anxiety?", mc)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Error("first reply FromCache = true")
	}

	second, err := o.Process(context.Background(), "s2", "what is anxiety?", mc)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Error("second reply FromCache = false, want cache hit")
	}
	if second.Response != first.Response {
		t.Errorf("cached Response = %q, want %q", second.Response, first.Response)
	}
	if fake.callCount() != 1 {
		t.Errorf("model calls = %d, want 1", fake.callCount())
	}
}

func TestProcess_ModerateCrisisFooter(t *testing.T) {
	fake := &fakeCompleter{reply: "I hear how worn down you are."}
	o := newTestOrchestrator(fake)
	mc := domain.NewMentalHealthContext()

	reply, err := o.Process(context.Background(), "s1", "I feel hopeless about all of it", mc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply.Response, fake.reply) {
		t.Errorf("Response = %q, want model reply first", reply.Response)
	}
	if !strings.Contains(reply.Response, "988") {
		t.Error("moderate crisis reply must point at 988")
	}
	if !reply.CrisisDetected {
		t.Error("CrisisDetected = false, want true for moderate screen")
	}
	if mc.LastCrisisCheck == nil {
		t.Error("LastCrisisCheck not stamped")
	}
}

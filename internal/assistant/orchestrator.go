package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/serenity-health/serenity/internal/analyzer"
	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/domain"
	"github.com/serenity-health/serenity/internal/emotion"
	"github.com/serenity-health/serenity/internal/retrieval"
	"github.com/serenity-health/serenity/internal/service"
)

// apologyResponse is the in-band answer when every model attempt failed.
// The endpoint still returns 200; losing the model must not read as an
// error to someone mid-conversation.
const apologyResponse = "I'm sorry, I'm having trouble putting a reply together right now. I'm still here, and what you wrote still matters. Could you give me a moment and try again?"

// Notifier receives crisis signals for the ops channel. Implementations
// must not block and must never see message content.
type Notifier interface {
	NotifyCrisis(ctx context.Context, severity string)
}

// Orchestrator runs one user message through the full pipeline: crisis
// screen, analysis, cache, retrieval, synthesis, memory and context
// accumulation.
type Orchestrator struct {
	llm       ChatCompleter
	memory    *Memory
	retriever *retrieval.Retriever
	emotions  *emotion.Analyzer
	cache     *service.ResponseCache
	notifier  Notifier
}

func NewOrchestrator(llm ChatCompleter, memory *Memory, retriever *retrieval.Retriever, emotions *emotion.Analyzer, cache *service.ResponseCache, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		llm:       llm,
		memory:    memory,
		retriever: retriever,
		emotions:  emotions,
		cache:     cache,
		notifier:  notifier,
	}
}

func (o *Orchestrator) Memory() *Memory {
	return o.memory
}

// Process answers one message. mc is the chat's accumulated context and is
// updated in place; the caller persists it. The only error returned is for
// an empty message - model failures degrade to an in-band apology.
func (o *Orchestrator) Process(ctx context.Context, sessionID, message string, mc *domain.MentalHealthContext) (*domain.AssistantReply, error) {
	start := time.Now()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(message) > config.MaxMessageLen {
		cut := config.MaxMessageLen
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut]
	}

	crisis := analyzer.CheckCrisis(message)
	analysis := analyzer.Analyze(message)
	emo := o.emotions.Analyze(message, 3)

	if crisis.Immediate {
		return o.handleCrisis(ctx, sessionID, message, crisis, analysis, emo, mc, start), nil
	}

	qt := analyzer.ClassifyQueryType(message)

	// Only impersonal lookups are cacheable; emotional and conversational
	// replies must stay specific to the person and the moment.
	cacheable := qt == analyzer.QueryFactual || qt == analyzer.QueryPractical
	if cacheable && o.cache != nil {
		if hit := o.cache.Get(message); hit != nil {
			hit.FromCache = true
			hit.ElapsedMs = time.Since(start).Milliseconds()
			o.remember(ctx, sessionID, message, hit.Response)
			o.accumulate(mc, emo, analysis, crisis, nil)
			return hit, nil
		}
	}

	snippets := o.retriever.Retrieve(ctx, message, qt)
	situation, hasSituation := analyzer.DetectSituation(message)

	input := PromptInput{
		Message:   message,
		QueryType: qt,
		Severity:  analysis.Severity,
		Category:  emo.Category,
		Snippets:  snippets,
		Memory:    o.memory.Context(sessionID),
	}
	if hasSituation {
		input.Situation = &situation
	}

	temperature, ok := config.TemperatureByQueryType[string(qt)]
	if !ok {
		temperature = 0.6
	}

	reply := &domain.AssistantReply{
		QueryType: string(qt),
		Sources:   snippetSources(snippets),
	}

	resp, err := o.llm.Chat(ctx, BuildMessages(input), temperature)
	if err != nil {
		slog.Error("assistant completion failed", "session_id", sessionID, "error", err)
		reply.Response = apologyResponse
		reply.Confidence = 0.3
	} else {
		reply.Response = resp.Content()
		reply.ModelUsed = resp.Model
		reply.Confidence = sourceConfidence(reply.Sources)
	}

	var shared []string
	if crisis.Severity == analyzer.CrisisModerate {
		reply.Response += moderateCrisisFooter
		reply.CrisisDetected = true
		shared = []string{crisisSource}
		o.notifyCrisis(ctx, string(analyzer.CrisisModerate))
	}
	reply.ElapsedMs = time.Since(start).Milliseconds()

	o.remember(ctx, sessionID, message, reply.Response)
	o.accumulate(mc, emo, analysis, crisis, shared)

	if cacheable && err == nil && !crisis.Detected && o.cache != nil {
		o.cache.Put(message, *reply)
	}
	return reply, nil
}

// handleCrisis short-circuits the pipeline with the fixed crisis reply.
func (o *Orchestrator) handleCrisis(ctx context.Context, sessionID, message string, crisis analyzer.CrisisCheck, analysis analyzer.Result, emo domain.EmotionAnalysis, mc *domain.MentalHealthContext, start time.Time) *domain.AssistantReply {
	slog.Warn("crisis screen tripped", "session_id", sessionID, "severity", crisis.Severity)
	o.notifyCrisis(ctx, string(crisis.Severity))

	o.remember(ctx, sessionID, message, crisisResponse)
	o.accumulate(mc, emo, analysis, crisis, []string{crisisSource})

	return &domain.AssistantReply{
		Response:       crisisResponse,
		QueryType:      QueryTypeCrisis,
		Confidence:     1.0,
		Sources:        []string{crisisSource},
		CrisisDetected: true,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
}

func (o *Orchestrator) remember(ctx context.Context, sessionID, userText, aiText string) {
	o.memory.Append(ctx, sessionID, service.RoleUser, userText)
	o.memory.Append(ctx, sessionID, service.RoleAssistant, aiText)
}

func (o *Orchestrator) accumulate(mc *domain.MentalHealthContext, emo domain.EmotionAnalysis, analysis analyzer.Result, crisis analyzer.CrisisCheck, resources []string) {
	intensity := analysis.Severity
	if intensity < 1 {
		intensity = 1
	}
	AccumulateContext(mc, ContextUpdate{
		Emotion:   emo.Primary,
		Intensity: intensity,
		Analysis:  analysis,
		Crisis:    crisis,
		Resources: resources,
	})
}

func (o *Orchestrator) notifyCrisis(ctx context.Context, severity string) {
	if o.notifier != nil {
		o.notifier.NotifyCrisis(ctx, severity)
	}
}

// snippetSources collects the distinct source names behind the snippets.
func snippetSources(snippets []retrieval.Snippet) []string {
	sources := []string{}
	for _, sn := range snippets {
		for _, s := range sn.Sources {
			found := false
			for _, have := range sources {
				if have == s {
					found = true
					break
				}
			}
			if !found {
				sources = append(sources, s)
			}
		}
	}
	return sources
}

// sourceConfidence averages the trust weights of the sources in play.
// No sources means the model answered from conversation alone.
func sourceConfidence(sources []string) float64 {
	if len(sources) == 0 {
		return 0.6
	}
	total := 0.0
	for _, s := range sources {
		total += retrieval.SourceConfidence(s)
	}
	return total / float64(len(sources))
}

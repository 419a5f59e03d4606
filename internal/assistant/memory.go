// Package assistant runs the support-chat pipeline: message analysis,
// crisis handling, retrieval, prompt synthesis and per-session
// conversation memory.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/service"
)

// ChatCompleter is the slice of the LLM client the assistant needs.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []service.ChatMessage, temperature float64) (*service.ChatResponse, error)
}

type memMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

type sessionMemory struct {
	messages []memMessage
	summary  string
	critical []string
	total    int
	lastSeen time.Time
}

// Memory holds short-term conversation state per session: a bounded message
// window, a rolling summary and extracted critical facts. Sessions idle past
// the timeout are dropped by the janitor.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*sessionMemory
	llm      ChatCompleter
}

func NewMemory(llm ChatCompleter) *Memory {
	return &Memory{
		sessions: make(map[string]*sessionMemory),
		llm:      llm,
	}
}

// estimateTokens approximates the token cost of a text as words * 1.3.
func estimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}

var criticalPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`(?i)\bmy name is ([A-Za-z]+)`), "Name: %s"},
	{regexp.MustCompile(`(?i)\bi(?:'m| am) (\d{1,2}) years old`), "Age: %s"},
	{regexp.MustCompile(`(?i)\b(?:taking|prescribed) ([a-z][a-z-]{3,})\b`), "Medication: %s"},
	{regexp.MustCompile(`(?i)\bdiagnosed with ([a-zA-Z ]{3,40})`), "Diagnosis: %s"},
	{regexp.MustCompile(`(?i)\bmy (?:therapist|psychiatrist|counselor)\b`), "Is working with a therapist"},
}

const maxCriticalFacts = 10

func extractCriticalFacts(text string) []string {
	facts := []string{}
	for _, p := range criticalPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			facts = append(facts, fmt.Sprintf(p.format, strings.TrimSpace(m[1])))
		} else {
			facts = append(facts, p.format)
		}
	}
	return facts
}

// Append records one message and maintains the window: critical facts are
// extracted from user messages, the window is trimmed to the token budget,
// and every few exchanges the older half is folded into the summary.
func (m *Memory) Append(ctx context.Context, sessionID, role, content string) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &sessionMemory{}
		m.sessions[sessionID] = sess
	}

	sess.messages = append(sess.messages, memMessage{Role: role, Content: content, At: time.Now()})
	sess.total++
	sess.lastSeen = time.Now()

	if role == service.RoleUser {
		for _, fact := range extractCriticalFacts(content) {
			sess.critical = appendFact(sess.critical, fact)
		}
	}
	sess.trim()

	needsSummary := m.llm != nil && sess.total%config.SummaryEvery == 0 && len(sess.messages) > config.MemoryMinKept
	var toSummarize []memMessage
	var prevSummary string
	if needsSummary {
		cut := len(sess.messages) - config.MemoryMinKept
		toSummarize = append([]memMessage{}, sess.messages[:cut]...)
		prevSummary = sess.summary
	}
	m.mu.Unlock()

	if !needsSummary {
		return
	}
	summary, err := m.summarize(ctx, prevSummary, toSummarize)
	if err != nil {
		slog.Warn("conversation summary failed", "session_id", sessionID, "error", err)
		return
	}
	m.mu.Lock()
	if sess, ok := m.sessions[sessionID]; ok {
		sess.summary = summary
		if len(sess.messages) > config.MemoryMinKept {
			sess.messages = sess.messages[len(sess.messages)-config.MemoryMinKept:]
		}
	}
	m.mu.Unlock()
}

func appendFact(facts []string, fact string) []string {
	for _, f := range facts {
		if f == fact {
			return facts
		}
	}
	facts = append(facts, fact)
	if len(facts) > maxCriticalFacts {
		facts = facts[len(facts)-maxCriticalFacts:]
	}
	return facts
}

// trim drops the oldest messages until the window fits both the message cap
// and the token budget, always keeping the last few.
func (s *sessionMemory) trim() {
	if len(s.messages) > config.MemoryWindow {
		s.messages = s.messages[len(s.messages)-config.MemoryWindow:]
	}
	tokens := 0
	for _, msg := range s.messages {
		tokens += estimateTokens(msg.Content)
	}
	for tokens > config.MemoryMaxTokens && len(s.messages) > config.MemoryMinKept {
		tokens -= estimateTokens(s.messages[0].Content)
		s.messages = s.messages[1:]
	}
}

func (m *Memory) summarize(ctx context.Context, prevSummary string, messages []memMessage) (string, error) {
	var b strings.Builder
	if prevSummary != "" {
		b.WriteString("Earlier summary: " + prevSummary + "\n\n")
	}
	for _, msg := range messages {
		b.WriteString(msg.Role + ": " + msg.Content + "\n")
	}

	resp, err := m.llm.Chat(ctx, []service.ChatMessage{
		{Role: service.RoleSystem, Content: "Summarize this supportive conversation in 3-4 sentences. Keep emotional themes, coping strategies discussed, and anything the person asked to remember. Write in third person."},
		{Role: service.RoleUser, Content: b.String()},
	}, 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content()), nil
}

// SessionContext is the memory slice handed to prompt synthesis.
type SessionContext struct {
	Summary  string
	Critical []string
	Recent   []memMessage
}

// Context returns the session's summary, critical facts and recent messages.
func (m *Memory) Context(sessionID string) SessionContext {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return SessionContext{}
	}
	return SessionContext{
		Summary:  sess.summary,
		Critical: append([]string{}, sess.critical...),
		Recent:   append([]memMessage{}, sess.messages...),
	}
}

// MemoryStats describes one session's memory for the stats endpoint.
type MemoryStats struct {
	SessionID     string    `json:"session_id"`
	MessageCount  int       `json:"message_count"`
	TotalMessages int       `json:"total_messages"`
	TokenEstimate int       `json:"token_estimate"`
	HasSummary    bool      `json:"has_summary"`
	CriticalFacts []string  `json:"critical_facts"`
	LastActive    time.Time `json:"last_active"`
}

// Stats reports the session's memory state; found is false for unknown ids.
func (m *Memory) Stats(sessionID string) (MemoryStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return MemoryStats{}, false
	}
	tokens := 0
	for _, msg := range sess.messages {
		tokens += estimateTokens(msg.Content)
	}
	return MemoryStats{
		SessionID:     sessionID,
		MessageCount:  len(sess.messages),
		TotalMessages: sess.total,
		TokenEstimate: tokens,
		HasSummary:    sess.summary != "",
		CriticalFacts: append([]string{}, sess.critical...),
		LastActive:    sess.lastSeen,
	}, true
}

func (m *Memory) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Memory) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpired drops sessions idle longer than maxIdle and reports how
// many were removed. Called from the janitor.
func (m *Memory) CleanupExpired(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if time.Since(sess.lastSeen) > maxIdle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

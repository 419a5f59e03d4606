package config

import "time"

const (
	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Web search timeout
	WebSearchTimeout = 10 * time.Second

	// Response cache
	ResponseCacheTTL = 1 * time.Hour
	ResponseCacheMax = 100

	// Conversation memory
	MemoryWindow       = 50
	MemoryMaxTokens    = 8000
	SummaryEvery       = 20
	MemoryMinKept      = 5
	SessionIdleTimeout = 6 * time.Hour

	// Background cleanup interval
	JanitorInterval = 60 * time.Second

	// Severity scale
	SeverityMax        = 10
	CrisisSeverityFloor = 7

	// Retrieval
	IndexTopK      = 20
	WebTopK        = 10
	FinalTopK      = 10
	MinRelevance   = 0.5
	IndexSourceWeight = 0.85
	WebSourceWeight   = 0.7

	// LLM generation
	MaxCompletionTokens = 600
	MaxMessageLen       = 4000

	// Rate limits (per minute)
	RateLimitDefault = 60
	RateLimitChat    = 10

	// Auth
	TokenTTL       = 7 * 24 * time.Hour
	MinPasswordLen = 8

	// Pagination
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// TemperatureByQueryType tunes generation per detected query type.
var TemperatureByQueryType = map[string]float64{
	"emotional":      0.7,
	"factual":        0.3,
	"practical":      0.5,
	"conversational": 0.6,
}

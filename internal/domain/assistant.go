package domain

// AssistantReply is the assistant pipeline's answer to one user message.
type AssistantReply struct {
	Response       string   `json:"response"`
	QueryType      string   `json:"query_type"`
	Confidence     float64  `json:"confidence"`
	Sources        []string `json:"sources"`
	CrisisDetected bool     `json:"crisis_detected"`
	FromCache      bool     `json:"from_cache,omitempty"`
	ModelUsed      string   `json:"model_used,omitempty"`
	ElapsedMs      int64    `json:"elapsed_ms"`
}

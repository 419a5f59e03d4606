package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/serenity-health/serenity/internal/config"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMService talks to an OpenAI-compatible chat completions endpoint.
// When the primary model fails the request is retried once on the
// fallback model before the error is surfaced.
type LLMService struct {
	apiKey        string
	baseURL       string
	model         string
	fallbackModel string
	httpClient    *http.Client
}

func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		apiKey:        cfg.LLMAPIKey,
		baseURL:       cfg.LLMBaseURL,
		model:         cfg.LLMModel,
		fallbackModel: cfg.LLMFallbackModel,
		httpClient:    &http.Client{Timeout: config.RequestTimeout},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatResponse struct {
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// Content returns the first choice's text, or "" when the response is empty.
func (r *ChatResponse) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func (s *LLMService) Chat(ctx context.Context, messages []ChatMessage, temperature float64) (*ChatResponse, error) {
	resp, err := s.complete(ctx, s.model, messages, temperature)
	if err == nil {
		return resp, nil
	}
	if s.fallbackModel == "" || s.fallbackModel == s.model {
		return nil, err
	}
	slog.Warn("primary model failed, retrying on fallback",
		"model", s.model, "fallback", s.fallbackModel, "error", err)
	return s.complete(ctx, s.fallbackModel, messages, temperature)
}

func (s *LLMService) complete(ctx context.Context, model string, messages []ChatMessage, temperature float64) (*ChatResponse, error) {
	chatReq := ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   config.MaxCompletionTokens,
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("model %s rate limited (429)", model)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("model %s unavailable (%d)", model, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completion failed (%d): %s", resp.StatusCode, truncateBody(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("model %s returned no choices", model)
	}
	return &chatResp, nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/serenity-health/serenity/internal/config"
)

func newTestLLM(srv *httptest.Server) *LLMService {
	return &LLMService{
		apiKey:        "test-key",
		baseURL:       srv.URL,
		model:         "primary",
		fallbackModel: "backup",
		httpClient:    srv.Client(),
	}
}

func TestLLMService_Chat(t *testing.T) {
	var gotReq ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"primary","choices":[{"message":{"content":"hello there"}}],"usage":{"prompt_tokens":12,"completion_tokens":4,"total_tokens":16}}`)
	}))
	defer srv.Close()

	resp, err := newTestLLM(srv).Chat(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}}, 0.7)
	require.NoError(t, err)
	require.Equal(t, "hello there", resp.Content())
	require.Equal(t, 16, resp.Usage.TotalTokens)

	require.Equal(t, "primary", gotReq.Model)
	require.Equal(t, config.MaxCompletionTokens, gotReq.MaxTokens)
	require.NotNil(t, gotReq.Temperature)
	require.InDelta(t, 0.7, *gotReq.Temperature, 1e-9)
}

func TestLLMService_FallsBackWhenPrimaryFails(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		models = append(models, req.Model)
		if req.Model == "primary" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"model":"backup","choices":[{"message":{"content":"from backup"}}]}`)
	}))
	defer srv.Close()

	resp, err := newTestLLM(srv).Chat(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}}, 0.5)
	require.NoError(t, err)
	require.Equal(t, "from backup", resp.Content())
	require.Equal(t, []string{"primary", "backup"}, models)
}

func TestLLMService_RateLimitedOnBothModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestLLM(srv).Chat(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}}, 0.5)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "rate limited"), "err = %v", err)
}

func TestChatResponse_Content(t *testing.T) {
	var nilResp *ChatResponse
	require.Equal(t, "", nilResp.Content())
	require.Equal(t, "", (&ChatResponse{}).Content())
}

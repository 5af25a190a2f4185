package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/brain/providers/ai"
)

func TestSendMessage_Success(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Errorf("expected x-api-key header, got %q", key)
		}
		if version := r.Header.Get("anthropic-version"); version != anthropicVersion {
			t.Errorf("expected anthropic-version %q, got %q", anthropicVersion, version)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no Bearer token, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{
			"id": "msg-1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "hello "}, {"type": "text", "text": "world"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		SystemPrompt: "be brief",
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
		GenerationConfig: &ai.GenerationConfig{
			MaxTokens:   256,
			Temperature: 0.5,
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response.Content != "hello world" {
		t.Errorf("expected concatenated text blocks, got %q", response.Content)
	}
	if response.FinishReason != "end_turn" {
		t.Errorf("expected stop reason end_turn, got %q", response.FinishReason)
	}
	// Total is derived: Anthropic only reports input and output counts.
	if response.Usage == nil || response.Usage.TotalTokens != 15 {
		t.Errorf("expected total tokens 15, got %+v", response.Usage)
	}

	if gotReq.System != "be brief" {
		t.Errorf("expected system field, got %q", gotReq.System)
	}
	if gotReq.MaxTokens != 256 {
		t.Errorf("expected max_tokens 256, got %d", gotReq.MaxTokens)
	}
}

func TestSendMessage_MaxTokensDefaultApplied(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"id":"msg-2","type":"message","content":[{"type":"text","text":"ok"}]}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	if _, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The Messages API rejects requests without max_tokens.
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("expected default max_tokens %d, got %d", defaultMaxTokens, gotReq.MaxTokens)
	}
}

func TestSendMessage_MissingAPIKey(t *testing.T) {
	provider := New().WithAPIKey("")

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestSendMessage_ProviderReportedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error","message":"try later"}}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for error-typed body, got nil")
	}
	if !strings.Contains(err.Error(), "overloaded_error") {
		t.Errorf("expected provider error type in message, got %v", err)
	}
}

func TestName(t *testing.T) {
	if got := New().Name(); got != "claude" {
		t.Errorf("expected provider name claude, got %q", got)
	}
}

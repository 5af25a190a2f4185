package gemini

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
	var gotReq generateContentRequest
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "hi "}, {"text": "there"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7},
			"modelVersion": "gemini-2.0-flash-lite"
		}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		SystemPrompt: "be brief",
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hi"},
			{Role: ai.RoleUser, Content: "again"},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Multi-part candidates are concatenated.
	if response.Content != "hi there" {
		t.Errorf("expected concatenated content, got %q", response.Content)
	}
	if response.Usage == nil || response.Usage.TotalTokens != 7 {
		t.Errorf("expected total tokens 7, got %+v", response.Usage)
	}

	if !strings.Contains(gotPath, "gemini-2.0-flash-lite:generateContent") {
		t.Errorf("expected default model in path, got %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected x-goog-api-key header, got %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "be brief" {
		t.Errorf("expected systemInstruction, got %+v", gotReq.SystemInstruction)
	}
	// Gemini uses "model" for the assistant role.
	if len(gotReq.Contents) != 3 || gotReq.Contents[1].Role != "model" {
		t.Errorf("expected assistant mapped to model role, got %+v", gotReq.Contents)
	}
}

func TestSendMessage_MissingAPIKey(t *testing.T) {
	provider := New().WithAPIKey("")

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestSendMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})
	if err == nil {
		t.Fatal("expected error for 429 response, got nil")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestName(t *testing.T) {
	if got := New().Name(); got != "gemini" {
		t.Errorf("expected provider name gemini, got %q", got)
	}
}

package synthesis

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/providers/ai"
)

type mockProvider struct {
	name            string
	sendMessageFunc func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error)
	calls           atomic.Int64
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) SendMessage(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	m.calls.Add(1)
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, req)
	}
	return &ai.ChatResponse{Id: "syn-1", Model: "mock-model", Content: "synthesized answer"}, nil
}

func (m *mockProvider) WithAPIKey(string) ai.Provider           { return m }
func (m *mockProvider) WithBaseURL(string) ai.Provider          { return m }
func (m *mockProvider) WithHttpClient(*http.Client) ai.Provider { return m }

func okResult(provider, content string) dispatch.Result {
	return dispatch.Result{Provider: provider, Model: provider + "-model", Content: content}
}

func failedResult(provider string, kind dispatch.FailureKind) dispatch.Result {
	return dispatch.Result{
		Provider: provider,
		Failure:  &dispatch.Failure{Kind: kind, Message: "it broke"},
	}
}

func TestSynthesize_NoSuccessesMakesNoCall(t *testing.T) {
	synth := &mockProvider{name: "mistral"}
	d := dispatch.New([]ai.Provider{synth}, time.Second)
	s := New(d, "mistral", "", nil)

	outcome := dispatch.Outcome{Results: []dispatch.Result{
		failedResult("mistral", dispatch.FailureTimeout),
		failedResult("gemini", dispatch.FailureProviderError),
	}}

	_, err := s.Synthesize(context.Background(), "what is up", outcome)
	if !errors.Is(err, ErrNoSuccessfulResponses) {
		t.Fatalf("expected ErrNoSuccessfulResponses, got %v", err)
	}
	if got := synth.calls.Load(); got != 0 {
		t.Errorf("expected zero provider calls with nothing to synthesize, got %d", got)
	}
}

func TestSynthesize_PromptEmbedsOnlySuccesses(t *testing.T) {
	var captured ai.ChatRequest
	synth := &mockProvider{
		name: "mistral",
		sendMessageFunc: func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
			captured = req
			return &ai.ChatResponse{Id: "syn-1", Model: "mistral-large-latest", Content: "combined"}, nil
		},
	}
	d := dispatch.New([]ai.Provider{synth}, time.Second)
	s := New(d, "mistral", "", nil)

	outcome := dispatch.Outcome{Results: []dispatch.Result{
		okResult("mistral", "answer from mistral"),
		failedResult("gemini", dispatch.FailureTimeout),
		okResult("claude", "answer from claude"),
	}}

	result, err := s.Synthesize(context.Background(), "what is up", outcome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := synth.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one synthesis call, got %d", got)
	}

	prompt := captured.Messages[0].Content
	if !strings.Contains(prompt, "what is up") {
		t.Error("prompt should embed the original question")
	}
	if !strings.Contains(prompt, "answer from mistral") || !strings.Contains(prompt, "answer from claude") {
		t.Error("prompt should embed every successful response")
	}
	if strings.Contains(prompt, "gemini") {
		t.Error("failed providers must not appear in the synthesis prompt")
	}

	if result.Content != "combined" {
		t.Errorf("expected synthesized content, got %q", result.Content)
	}
	if len(result.Sources) != 2 || result.Sources[0] != "mistral" || result.Sources[1] != "claude" {
		t.Errorf("expected sources [mistral claude] in call order, got %v", result.Sources)
	}
}

func TestSynthesize_SingleSuccessStillSynthesizes(t *testing.T) {
	synth := &mockProvider{name: "mistral"}
	d := dispatch.New([]ai.Provider{synth}, time.Second)
	s := New(d, "mistral", "", nil)

	outcome := dispatch.Outcome{Results: []dispatch.Result{
		okResult("claude", "only answer"),
	}}

	result, err := s.Synthesize(context.Background(), "q", outcome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := synth.calls.Load(); got != 1 {
		t.Errorf("expected one synthesis call even with a single source, got %d", got)
	}
	if len(result.Sources) != 1 || result.Sources[0] != "claude" {
		t.Errorf("expected sources [claude], got %v", result.Sources)
	}
}

func TestSynthesize_CallFailurePropagates(t *testing.T) {
	synth := &mockProvider{
		name: "mistral",
		sendMessageFunc: func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
			return nil, errors.New("non-2xx status 503")
		},
	}
	d := dispatch.New([]ai.Provider{synth}, time.Second)
	s := New(d, "mistral", "", nil)

	outcome := dispatch.Outcome{Results: []dispatch.Result{okResult("claude", "fine")}}

	_, err := s.Synthesize(context.Background(), "q", outcome)
	if err == nil {
		t.Fatal("expected the synthesis call failure to propagate")
	}
	var failure *dispatch.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected a classified failure in the chain, got %v", err)
	}
	if failure.Kind != dispatch.FailureProviderError {
		t.Errorf("expected provider_error, got %s", failure.Kind)
	}
}

func TestSynthesize_ModelOverride(t *testing.T) {
	var captured ai.ChatRequest
	synth := &mockProvider{
		name: "mistral",
		sendMessageFunc: func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
			captured = req
			return &ai.ChatResponse{Content: "ok", Model: req.Model}, nil
		},
	}
	d := dispatch.New([]ai.Provider{synth}, time.Second)
	s := New(d, "mistral", "mistral-small-latest", nil)

	outcome := dispatch.Outcome{Results: []dispatch.Result{okResult("gemini", "x")}}
	if _, err := s.Synthesize(context.Background(), "q", outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Model != "mistral-small-latest" {
		t.Errorf("expected the configured synthesis model, got %q", captured.Model)
	}
}

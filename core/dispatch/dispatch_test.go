package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leofalp/brain/providers/ai"
)

// mockProvider is a configurable ai.Provider test double.
type mockProvider struct {
	name            string
	delay           time.Duration
	response        *ai.ChatResponse
	err             error
	panicValue      any
	sendMessageFunc func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error)
	calls           atomic.Int64
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) SendMessage(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	m.calls.Add(1)
	if m.panicValue != nil {
		panic(m.panicValue)
	}
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, req)
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &ai.ChatResponse{
		Id:      "mock-id",
		Model:   "mock-model",
		Content: m.name + " says hi",
		Usage:   &ai.Usage{TotalTokens: 10},
	}, nil
}

func (m *mockProvider) WithAPIKey(string) ai.Provider           { return m }
func (m *mockProvider) WithBaseURL(string) ai.Provider          { return m }
func (m *mockProvider) WithHttpClient(*http.Client) ai.Provider { return m }

func TestRun_EmptyCallsYieldsEmptyOutcome(t *testing.T) {
	d := New(nil, time.Second)

	outcome := d.Run(context.Background(), nil)
	if len(outcome.Results) != 0 {
		t.Errorf("expected empty outcome, got %d results", len(outcome.Results))
	}
	if outcome.ID == "" {
		t.Error("expected a correlation id even for an empty outcome")
	}
}

func TestRun_ResultOrderMatchesCallOrder(t *testing.T) {
	// Completion order is deliberately the reverse of call order.
	slow := &mockProvider{name: "slow", delay: 120 * time.Millisecond}
	medium := &mockProvider{name: "medium", delay: 60 * time.Millisecond}
	fast := &mockProvider{name: "fast"}

	d := New([]ai.Provider{slow, medium, fast}, time.Second)

	outcome := d.Run(context.Background(), []Call{
		{Provider: "slow"},
		{Provider: "medium"},
		{Provider: "fast"},
	})

	if len(outcome.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(outcome.Results))
	}
	for i, want := range []string{"slow", "medium", "fast"} {
		if outcome.Results[i].Provider != want {
			t.Errorf("result %d: expected provider %q, got %q", i, want, outcome.Results[i].Provider)
		}
	}
}

func TestRun_TimeoutDoesNotBlockOthers(t *testing.T) {
	hung := &mockProvider{name: "hung", delay: 5 * time.Second}
	quick := &mockProvider{name: "quick"}

	d := New([]ai.Provider{hung, quick}, 50*time.Millisecond)

	started := time.Now()
	outcome := d.Run(context.Background(), []Call{
		{Provider: "hung"},
		{Provider: "quick"},
	})
	elapsed := time.Since(started)

	if elapsed > 2*time.Second {
		t.Fatalf("dispatch blocked on the hung provider: took %v", elapsed)
	}

	if outcome.Results[0].Ok() {
		t.Fatal("expected the hung provider to fail")
	}
	if outcome.Results[0].Failure.Kind != FailureTimeout {
		t.Errorf("expected timeout classification, got %s", outcome.Results[0].Failure.Kind)
	}
	if !outcome.Results[1].Ok() {
		t.Errorf("expected the quick provider to succeed, got %+v", outcome.Results[1].Failure)
	}
}

func TestRun_MissingCredentialClassification(t *testing.T) {
	broke := &mockProvider{
		name: "broke",
		err:  fmt.Errorf("API key is not set: %w", ai.ErrMissingCredential),
	}

	d := New([]ai.Provider{broke}, time.Second)
	outcome := d.Run(context.Background(), []Call{{Provider: "broke"}})

	failure := outcome.Results[0].Failure
	if failure == nil || failure.Kind != FailureMissingCredential {
		t.Errorf("expected missing_credential classification, got %+v", failure)
	}
}

func TestRun_ProviderErrorClassification(t *testing.T) {
	flaky := &mockProvider{name: "flaky", err: errors.New("non-2xx status 500: boom")}

	d := New([]ai.Provider{flaky}, time.Second)
	outcome := d.Run(context.Background(), []Call{{Provider: "flaky"}})

	failure := outcome.Results[0].Failure
	if failure == nil || failure.Kind != FailureProviderError {
		t.Errorf("expected provider_error classification, got %+v", failure)
	}
}

func TestRun_UnknownProvider(t *testing.T) {
	d := New(nil, time.Second)
	outcome := d.Run(context.Background(), []Call{{Provider: "ghost"}})

	failure := outcome.Results[0].Failure
	if failure == nil || failure.Kind != FailureProviderError {
		t.Errorf("expected provider_error for unknown provider, got %+v", failure)
	}
}

func TestRun_PanicBecomesFatalFailure(t *testing.T) {
	unstable := &mockProvider{name: "unstable", panicValue: "boom"}
	calm := &mockProvider{name: "calm"}

	d := New([]ai.Provider{unstable, calm}, time.Second)
	outcome := d.Run(context.Background(), []Call{
		{Provider: "unstable"},
		{Provider: "calm"},
	})

	failure := outcome.Results[0].Failure
	if failure == nil || failure.Kind != FailureFatal {
		t.Errorf("expected fatal classification for panic, got %+v", failure)
	}
	if !outcome.Results[1].Ok() {
		t.Error("a panicking provider must not take down the others")
	}
}

func TestRun_PartialFailureKeepsAllResults(t *testing.T) {
	good := &mockProvider{name: "good"}
	bad := &mockProvider{name: "bad", err: errors.New("down")}

	d := New([]ai.Provider{good, bad}, time.Second)
	outcome := d.Run(context.Background(), []Call{
		{Provider: "good"},
		{Provider: "bad"},
	})

	if len(outcome.Results) != 2 {
		t.Fatalf("expected a result per call, got %d", len(outcome.Results))
	}
	if got := len(outcome.Succeeded()); got != 1 {
		t.Errorf("expected 1 success, got %d", got)
	}
	if got := len(outcome.Failed()); got != 1 {
		t.Errorf("expected 1 failure, got %d", got)
	}
}

func TestRun_EmptyContentIsSuccess(t *testing.T) {
	quiet := &mockProvider{
		name:     "quiet",
		response: &ai.ChatResponse{Id: "r1", Model: "m", Content: ""},
	}

	d := New([]ai.Provider{quiet}, time.Second)
	outcome := d.Run(context.Background(), []Call{{Provider: "quiet"}})

	result := outcome.Results[0]
	if !result.Ok() {
		t.Fatalf("empty content must be a success, got %+v", result.Failure)
	}
	if result.Content != "" {
		t.Errorf("expected empty content, got %q", result.Content)
	}
}

func TestRunOne_SingleCall(t *testing.T) {
	solo := &mockProvider{name: "solo"}

	d := New([]ai.Provider{solo}, time.Second)
	result := d.RunOne(context.Background(), Call{Provider: "solo"})

	if !result.Ok() {
		t.Fatalf("expected success, got %+v", result.Failure)
	}
	if got := solo.calls.Load(); got != 1 {
		t.Errorf("expected exactly one adapter call, got %d", got)
	}
}

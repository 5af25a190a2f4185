package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leofalp/brain/core/brain"
	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/providers/ai"
)

func TestResponse_SingleMode(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Response(&brain.Response{
		Content:  "Paris",
		Provider: "mistral",
		Model:    "mistral-large-latest",
		Mode:     brain.ModeSingle,
		Usage:    &ai.Usage{TotalTokens: 42},
	})

	out := buf.String()
	if !strings.Contains(out, "Mistral (mistral-large-latest)") {
		t.Errorf("expected the provider title, got:\n%s", out)
	}
	if !strings.Contains(out, "Paris") {
		t.Error("expected the answer content")
	}
	if !strings.Contains(out, "Tokens used: 42") {
		t.Error("expected the token line")
	}
}

func TestResponse_DeepModeShowsFailuresNextToSuccesses(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Response(&brain.Response{
		Content:  "combined answer",
		Provider: "mistral",
		Mode:     brain.ModeDeep,
		Individual: []dispatch.Result{
			{Provider: "mistral", Content: "a"},
			{Provider: "gemini", Failure: &dispatch.Failure{Kind: dispatch.FailureTimeout, Message: "deadline exceeded"}},
			{Provider: "claude", Content: "c"},
		},
		Sources: []string{"mistral", "claude"},
	})

	out := buf.String()
	if !strings.Contains(out, "Deep Thinking Synthesis via mistral") {
		t.Errorf("expected the synthesis title, got:\n%s", out)
	}
	if !strings.Contains(out, "MISTRAL Response:") || !strings.Contains(out, "CLAUDE Response:") {
		t.Error("expected a panel per successful provider")
	}
	if !strings.Contains(out, "GEMINI failed:") || !strings.Contains(out, "timeout") {
		t.Error("failed providers must be shown, not hidden")
	}
	if !strings.Contains(out, "combined answer") {
		t.Error("expected the synthesized content")
	}
}

func TestResponse_NoTokenLineWithoutUsage(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Response(&brain.Response{Content: "hi", Provider: "claude", Model: "m", Mode: brain.ModeSingle})

	if strings.Contains(buf.String(), "Tokens used") {
		t.Error("expected no token line without usage data")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.txt")

	err := WriteFile(path, "what is up", &brain.Response{Content: "not much"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "Question: what is up") || !strings.Contains(string(data), "Response: not much") {
		t.Errorf("unexpected output file content:\n%s", data)
	}
}

package brain

import (
	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/providers/ai"
)

// Mode selects the orchestration strategy for a request.
type Mode string

const (
	// ModeSingle queries exactly one provider.
	ModeSingle Mode = "single"

	// ModeDeep queries every configured provider in parallel and synthesizes
	// one consolidated answer.
	ModeDeep Mode = "deep"

	// ModeCode queries the designated code provider with a code-oriented
	// instruction prefix.
	ModeCode Mode = "code"
)

// Request is one parsed user request. Immutable once constructed.
type Request struct {
	Prompt   string
	Mode     Mode    // Defaults to ModeSingle
	Provider string  // Optional provider override (single/code modes)
	Model    string  // Optional model override
	Thread   string  // Conversation thread name; defaults to "default"
	Temperature float32 // Optional sampling override; 0 keeps the configured default
	MaxTokens   int     // Optional token-limit override; 0 keeps the configured default
}

// Response is the final answer of one completed cycle, together with every
// intermediate per-provider result so callers can display partial failures
// alongside the successes.
type Response struct {
	Content  string
	Provider string // Provider that produced the final text (synthesizer in deep mode)
	Model    string
	Mode     Mode
	Usage    *ai.Usage

	// Individual holds every per-provider result of the cycle in call order,
	// including failures.
	Individual []dispatch.Result

	// Sources lists the providers whose responses fed the synthesis
	// (deep mode only).
	Sources []string

	// Recorded reports whether the cycle was appended to history.
	Recorded bool
}

package synthesis

import (
	"errors"
	"fmt"
	"strings"

	"context"

	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/providers/ai"
	"github.com/leofalp/brain/providers/observability"
)

// ErrNoSuccessfulResponses is returned when synthesis is requested over an
// outcome with zero successful results. No provider call is made in that
// case: there is nothing to synthesize and the call would be a paid no-op.
var ErrNoSuccessfulResponses = errors.New("no successful responses to synthesize")

// instructionTemplate frames the consolidated answer. Only successful
// responses are embedded; failed providers are omitted entirely rather than
// represented as blanks.
const instructionTemplate = `Analyze the following responses from different AI models and provide a comprehensive synthesis.

Question: %s

Responses:
%s
Please provide a well-reasoned synthesis that combines the best insights from each perspective.`

// Result is a consolidated answer produced from multiple provider responses.
type Result struct {
	Content  string   // The synthesized text
	Provider string   // Provider that performed the synthesis
	Model    string   // Model that performed the synthesis
	Sources  []string // Providers whose responses contributed, in call order
	Usage    *ai.Usage
}

// Synthesizer combines the successful results of a fan-out into one answer by
// issuing a single additional call to a designated synthesis provider.
type Synthesizer struct {
	dispatcher *dispatch.Dispatcher
	provider   string // Designated synthesis provider id
	model      string // Optional model override for the synthesis call
	generation *ai.GenerationConfig
}

// New returns a Synthesizer that consolidates via the named provider, which
// must be registered with the dispatcher. model may be empty to use the
// provider's default.
func New(dispatcher *dispatch.Dispatcher, provider, model string, generation *ai.GenerationConfig) *Synthesizer {
	return &Synthesizer{
		dispatcher: dispatcher,
		provider:   provider,
		model:      model,
		generation: generation,
	}
}

// Provider returns the designated synthesis provider id.
func (s *Synthesizer) Provider() string {
	return s.provider
}

// Synthesize builds one prompt embedding every successful response of outcome
// and issues exactly one call to the synthesis provider. It returns
// [ErrNoSuccessfulResponses] without any network call when the outcome holds
// zero successes. The synthesis call is subject to the dispatcher's usual
// per-call timeout and failure classification; its failure is returned, not
// retried.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, outcome dispatch.Outcome) (*Result, error) {
	observer := observability.ObserverFromContext(ctx)

	succeeded := outcome.Succeeded()
	if len(succeeded) == 0 {
		return nil, ErrNoSuccessfulResponses
	}

	sources := make([]string, 0, len(succeeded))
	var responses strings.Builder
	for _, r := range succeeded {
		sources = append(sources, r.Provider)
		fmt.Fprintf(&responses, "--- %s ---\n%s\n\n", r.Provider, r.Content)
	}

	prompt := fmt.Sprintf(instructionTemplate, question, responses.String())

	if observer != nil {
		observer.Info(ctx, "Synthesizing provider responses",
			observability.String(observability.AttrDispatchID, outcome.ID),
			observability.String(observability.AttrLLMProvider, s.provider),
			observability.Int("synthesis.sources", len(sources)),
		)
	}

	result := s.dispatcher.RunOne(ctx, dispatch.Call{
		Provider:     s.provider,
		Model:        s.model,
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		SystemPrompt: "You synthesize multiple AI model responses into one comprehensive answer.",
		Generation:   s.generation,
	})
	if !result.Ok() {
		return nil, fmt.Errorf("synthesis via %s failed: %w", s.provider, result.Failure)
	}

	return &Result{
		Content:  result.Content,
		Provider: result.Provider,
		Model:    result.Model,
		Sources:  sources,
		Usage:    result.Usage,
	}, nil
}

package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/leofalp/brain/core/dispatch"
	"github.com/leofalp/brain/core/synthesis"
	"github.com/leofalp/brain/internal/config"
	"github.com/leofalp/brain/providers/ai"
	"github.com/leofalp/brain/providers/history"
	"github.com/leofalp/brain/providers/observability"
)

// codeSystemPrompt frames code-generation requests. Code mode is single-call
// orchestration with this prefix and the designated code provider.
const codeSystemPrompt = "You are an expert software engineer. Answer with working, idiomatic code first, followed by a brief explanation. Use fenced code blocks."

// Brain is the top-level mode controller. It turns a [Request] into the
// call set for its mode, fans out through the dispatcher, optionally
// synthesizes, and records the completed cycle in history. All collaborators
// are injected; Brain holds no mutable state of its own, so one instance
// serves concurrent requests.
type Brain struct {
	cfg         *config.Config
	dispatcher  *dispatch.Dispatcher
	synthesizer *synthesis.Synthesizer
	store       history.Store
}

// New wires a Brain from its collaborators.
func New(cfg *config.Config, dispatcher *dispatch.Dispatcher, synthesizer *synthesis.Synthesizer, store history.Store) *Brain {
	return &Brain{
		cfg:         cfg,
		dispatcher:  dispatcher,
		synthesizer: synthesizer,
		store:       store,
	}
}

// Respond runs one full request/response cycle and returns the final
// response. On any unrecoverable failure it returns an error and records
// nothing: a Turn reaches history only after a fully successful cycle.
func (b *Brain) Respond(ctx context.Context, req Request) (*Response, error) {
	observer := observability.ObserverFromContext(ctx)

	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt must not be empty")
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeSingle
	}
	thread := req.Thread
	if thread == "" {
		thread = "default"
	}

	if observer != nil {
		observer.Info(ctx, "Handling request",
			observability.String(observability.AttrMode, string(mode)),
			observability.String(observability.AttrThread, thread),
		)
	}

	contextMessages, err := b.contextMessages(ctx, thread)
	if err != nil {
		return nil, err
	}

	var response *Response
	switch mode {
	case ModeSingle:
		response, err = b.respondSingle(ctx, req, contextMessages)
	case ModeDeep:
		response, err = b.respondDeep(ctx, req, contextMessages)
	case ModeCode:
		response, err = b.respondCode(ctx, req, contextMessages)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	response.Mode = mode

	if err := b.record(ctx, thread, req.Prompt, response); err != nil {
		return nil, err
	}

	return response, nil
}

// respondSingle issues exactly one call to the requested (or default)
// provider. A missing credential fails the whole request before any dispatch;
// there is no silent fallback to another provider.
func (b *Brain) respondSingle(ctx context.Context, req Request, contextMessages []ai.Message) (*Response, error) {
	provider := req.Provider
	if provider == "" {
		provider = b.cfg.DefaultProvider
	}
	model := req.Model
	if model == "" && provider == b.cfg.DefaultProvider {
		model = b.cfg.DefaultModel
	}

	if err := b.requireCredential(provider); err != nil {
		return nil, err
	}

	call := dispatch.Call{
		Provider:   provider,
		Model:      model,
		Messages:   append(contextMessages, ai.Message{Role: ai.RoleUser, Content: req.Prompt}),
		Generation: b.generation(req),
	}

	outcome := b.dispatcher.Run(ctx, []dispatch.Call{call})
	result := outcome.Results[0]
	if !result.Ok() {
		return nil, fmt.Errorf("provider %s failed: %w", provider, result.Failure)
	}

	return &Response{
		Content:    result.Content,
		Provider:   result.Provider,
		Model:      result.Model,
		Usage:      result.Usage,
		Individual: outcome.Results,
	}, nil
}

// respondDeep fans the prompt out to every configured deep provider and
// consolidates the successes through the synthesizer. Providers lacking
// credentials are still dispatched so their failure is visible in the
// outcome rather than silently hidden; the cycle tolerates up to n-1
// failures. All providers failing, or the synthesis call itself failing,
// fails the request.
func (b *Brain) respondDeep(ctx context.Context, req Request, contextMessages []ai.Message) (*Response, error) {
	calls := make([]dispatch.Call, 0, len(b.cfg.DeepProviders))
	for _, provider := range b.cfg.DeepProviders {
		calls = append(calls, dispatch.Call{
			Provider:   provider,
			Messages:   append(contextMessages, ai.Message{Role: ai.RoleUser, Content: req.Prompt}),
			Generation: b.generation(req),
		})
	}

	outcome := b.dispatcher.Run(ctx, calls)

	synthesized, err := b.synthesizer.Synthesize(ctx, req.Prompt, outcome)
	if err != nil {
		return nil, fmt.Errorf("deep thinking failed: %w", err)
	}

	return &Response{
		Content:    synthesized.Content,
		Provider:   synthesized.Provider,
		Model:      synthesized.Model,
		Usage:      synthesized.Usage,
		Individual: outcome.Results,
		Sources:    synthesized.Sources,
	}, nil
}

// respondCode is single-call orchestration against the designated code
// provider with a code-oriented instruction prefix.
func (b *Brain) respondCode(ctx context.Context, req Request, contextMessages []ai.Message) (*Response, error) {
	provider := req.Provider
	if provider == "" {
		provider = b.cfg.CodeProvider
	}
	model := req.Model
	if model == "" {
		model = b.cfg.CodeModel
	}

	if err := b.requireCredential(provider); err != nil {
		return nil, err
	}

	call := dispatch.Call{
		Provider:     provider,
		Model:        model,
		Messages:     append(contextMessages, ai.Message{Role: ai.RoleUser, Content: req.Prompt}),
		SystemPrompt: codeSystemPrompt,
		Generation:   b.generation(req),
	}

	result := b.dispatcher.RunOne(ctx, call)
	if !result.Ok() {
		return nil, fmt.Errorf("provider %s failed: %w", provider, result.Failure)
	}

	return &Response{
		Content:    result.Content,
		Provider:   result.Provider,
		Model:      result.Model,
		Usage:      result.Usage,
		Individual: []dispatch.Result{result},
	}, nil
}

// requireCredential fails fast when the provider has no API key, naming the
// environment variable to set. Used by the single-call modes; deep mode lets
// per-provider failures surface through the outcome instead.
func (b *Brain) requireCredential(provider string) error {
	if b.cfg.HasCredential(provider) {
		return nil
	}
	failure := &dispatch.Failure{
		Kind:    dispatch.FailureMissingCredential,
		Message: fmt.Sprintf("no credential for provider %s (set %s)", provider, config.CredentialEnvVar(provider)),
	}
	return failure
}

// contextMessages replays the recent turns of a thread as chat messages so
// every provider sees the same conversation window.
func (b *Brain) contextMessages(ctx context.Context, thread string) ([]ai.Message, error) {
	turns, err := b.store.LastTurns(ctx, thread, b.cfg.ContextTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread context: %w", err)
	}

	messages := make([]ai.Message, 0, len(turns))
	for _, turn := range turns {
		role := ai.RoleUser
		if turn.Role == history.RoleAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}
	return messages, nil
}

// generation merges per-request overrides over the configured defaults.
func (b *Brain) generation(req Request) *ai.GenerationConfig {
	gen := b.cfg.Generation()
	if req.Temperature > 0 {
		gen.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		gen.MaxTokens = req.MaxTokens
	}
	return gen
}

// record appends the user and assistant turns of a completed cycle. Failed
// cycles never reach this point.
func (b *Brain) record(ctx context.Context, thread, prompt string, response *Response) error {
	now := time.Now()

	if err := b.store.Append(ctx, thread, history.Turn{
		Role:      history.RoleUser,
		Content:   prompt,
		Mode:      string(response.Mode),
		Timestamp: now,
	}); err != nil {
		return fmt.Errorf("failed to record user turn: %w", err)
	}

	if err := b.store.Append(ctx, thread, history.Turn{
		Role:      history.RoleAssistant,
		Content:   response.Content,
		Provider:  response.Provider,
		Mode:      string(response.Mode),
		Timestamp: now,
	}); err != nil {
		return fmt.Errorf("failed to record assistant turn: %w", err)
	}

	response.Recorded = true
	return nil
}

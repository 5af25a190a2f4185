package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/brain/providers/ai"
	"github.com/leofalp/brain/providers/observability"
)

// DefaultPerCallTimeout bounds each provider call when no explicit timeout is
// configured.
const DefaultPerCallTimeout = 30 * time.Second

// Call is one unit of work: a single chat request routed to one provider.
// Value object; concurrent calls share no mutable state.
type Call struct {
	Provider     string
	Model        string
	Messages     []ai.Message
	SystemPrompt string
	Generation   *ai.GenerationConfig
}

// Dispatcher fans a set of calls out to their providers concurrently and
// collects every call's fate into an [Outcome]. It is provider-agnostic: new
// providers are added by registering another [ai.Provider], never by new
// dispatch logic.
type Dispatcher struct {
	registry       map[string]ai.Provider
	perCallTimeout time.Duration
}

// New returns a Dispatcher over the given providers, keyed by
// [ai.Provider.Name]. perCallTimeout bounds each individual call; values <= 0
// fall back to [DefaultPerCallTimeout].
func New(providers []ai.Provider, perCallTimeout time.Duration) *Dispatcher {
	if perCallTimeout <= 0 {
		perCallTimeout = DefaultPerCallTimeout
	}
	registry := make(map[string]ai.Provider, len(providers))
	for _, p := range providers {
		registry[p.Name()] = p
	}
	return &Dispatcher{
		registry:       registry,
		perCallTimeout: perCallTimeout,
	}
}

// Provider returns the registered provider with the given id, or nil.
func (d *Dispatcher) Provider(id string) ai.Provider {
	return d.registry[id]
}

// PerCallTimeout returns the timeout applied to each individual call.
func (d *Dispatcher) PerCallTimeout() time.Duration {
	return d.perCallTimeout
}

// Run issues every call concurrently, each bounded by the per-call timeout,
// and waits for all of them to finish before returning. A slow or failed
// provider never blocks the others, and there is no first-success
// short-circuit: every perspective is collected. Result order always matches
// call order, independent of completion order. An empty call set yields an
// empty outcome, not an error.
//
// Adapter faults never escape: every failure is captured as a classified
// [Failure] on that call's [Result], including recovered panics.
func (d *Dispatcher) Run(ctx context.Context, calls []Call) Outcome {
	observer := observability.ObserverFromContext(ctx)

	outcome := Outcome{
		ID:      uuid.NewString(),
		Results: make([]Result, len(calls)),
	}
	if len(calls) == 0 {
		return outcome
	}

	if observer != nil {
		observer.Info(ctx, "Dispatching provider calls",
			observability.String(observability.AttrDispatchID, outcome.ID),
			observability.Int(observability.AttrDispatchCalls, len(calls)),
		)
	}

	started := time.Now()

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		// Each goroutine writes only its own index, so the result slice
		// needs no locking and completion order cannot reorder results.
		go func(i int, call Call) {
			defer wg.Done()
			outcome.Results[i] = d.invoke(ctx, call)
		}(i, call)
	}
	wg.Wait()

	if observer != nil {
		observer.Info(ctx, "Dispatch complete",
			observability.String(observability.AttrDispatchID, outcome.ID),
			observability.Int(observability.AttrDispatchSucceeded, len(outcome.Succeeded())),
			observability.Int(observability.AttrDispatchFailed, len(outcome.Failed())),
			observability.Duration(observability.AttrDispatchDuration, time.Since(started)),
		)
	}

	return outcome
}

// RunOne is the single-call convenience used for synthesis and single mode.
func (d *Dispatcher) RunOne(ctx context.Context, call Call) Result {
	return d.invoke(ctx, call)
}

// invoke executes one call under the per-call timeout and classifies any
// failure. It never returns an error: the call's fate is fully described by
// the returned Result.
func (d *Dispatcher) invoke(ctx context.Context, call Call) (result Result) {
	observer := observability.ObserverFromContext(ctx)
	result = Result{Provider: call.Provider}

	// An adapter must not take the whole request down with it.
	defer func() {
		if r := recover(); r != nil {
			result.Failure = &Failure{
				Kind:    FailureFatal,
				Message: fmt.Sprintf("provider %s panicked: %v", call.Provider, r),
			}
		}
	}()

	provider := d.registry[call.Provider]
	if provider == nil {
		result.Failure = &Failure{
			Kind:    FailureProviderError,
			Message: fmt.Sprintf("unknown provider %q", call.Provider),
		}
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, d.perCallTimeout)
	defer cancel()

	started := time.Now()
	response, err := provider.SendMessage(callCtx, ai.ChatRequest{
		Model:            call.Model,
		Messages:         call.Messages,
		SystemPrompt:     call.SystemPrompt,
		GenerationConfig: call.Generation,
	})
	elapsed := time.Since(started)

	if err != nil {
		failure := classify(callCtx, err)
		result.Failure = &failure
		if observer != nil {
			observer.Warn(ctx, "Provider call failed",
				observability.String(observability.AttrLLMProvider, call.Provider),
				observability.String(observability.AttrDispatchFailureKind, string(failure.Kind)),
				observability.Duration(observability.AttrDispatchDuration, elapsed),
				observability.Error(err),
			)
		}
		return result
	}

	// Empty content on a decoded response is a valid success: the provider
	// explicitly returned nothing.
	result.Content = response.Content
	result.Model = response.Model
	result.Usage = response.Usage

	if observer != nil {
		observer.Debug(ctx, "Provider call succeeded",
			observability.String(observability.AttrLLMProvider, call.Provider),
			observability.String(observability.AttrLLMModel, response.Model),
			observability.Duration(observability.AttrDispatchDuration, elapsed),
		)
	}

	return result
}

// classify maps an adapter error onto the failure taxonomy. The call context
// disambiguates timeouts: a DeadlineExceeded observed on the per-call context
// means the call ran out of time, whatever error text the transport produced.
func classify(callCtx context.Context, err error) Failure {
	switch {
	case errors.Is(err, ai.ErrMissingCredential):
		return Failure{Kind: FailureMissingCredential, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return Failure{Kind: FailureTimeout, Message: err.Error()}
	default:
		return Failure{Kind: FailureProviderError, Message: err.Error()}
	}
}

package ai

import (
	"context"
	"errors"
	"net/http"
)

// ErrMissingCredential is returned (wrapped) by a provider when no API key is
// configured for it. Adapters must return it before attempting any network
// I/O so callers can fail fast and classify the failure with [errors.Is].
var ErrMissingCredential = errors.New("missing provider credential")

// Provider is the core interface that every LLM provider implementation must
// satisfy. It covers the full lifecycle of a single request: authentication,
// endpoint configuration, message dispatch, and response interpretation.
type Provider interface {
	// Name returns the stable provider identifier ("mistral", "gemini",
	// "claude"). Used for routing, credential lookup, and display.
	Name() string

	// SendMessage sends a chat request to the provider and returns the
	// completed response. Returns an error if the credential is absent,
	// the provider call fails, the context is cancelled, or the response
	// cannot be decoded. Implementations never retry; retry policy belongs
	// to the caller.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}

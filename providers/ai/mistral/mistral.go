package mistral

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/brain/internal/utils"
	"github.com/leofalp/brain/providers/ai"
	"github.com/leofalp/brain/providers/observability"
)

const (
	// defaultBaseURL is the canonical base URL for Mistral's chat API.
	// The wire format is OpenAI chat-completions compatible.
	defaultBaseURL = "https://api.mistral.ai/v1"

	// chatCompletionsEndpoint is the path for the chat completions endpoint.
	chatCompletionsEndpoint = "/chat/completions"

	// defaultModel is used when the request does not name a model.
	defaultModel = "mistral-large-latest"
)

// MistralProvider implements [ai.Provider] for Mistral's chat completions API.
// Use [New] to construct a ready-to-use instance.
type MistralProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a [MistralProvider] initialized from environment variables.
// It reads MISTRAL_API_KEY for authentication and MISTRAL_API_BASE_URL for the
// endpoint base (defaulting to https://api.mistral.ai/v1 when unset).
// Use [MistralProvider.WithAPIKey] and [MistralProvider.WithBaseURL] to
// override these values after construction.
func New() *MistralProvider {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	baseURL := os.Getenv("MISTRAL_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &MistralProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Name implements [ai.Provider].
func (p *MistralProvider) Name() string {
	return "mistral"
}

// WithAPIKey sets the API key used for authenticating requests and returns the
// provider so calls can be chained. It overrides the value read from MISTRAL_API_KEY.
func (p *MistralProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls can
// be chained. Use this when targeting a proxy or local testing endpoint.
func (p *MistralProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained. Useful for injecting custom
// timeouts, transport layers, or test doubles.
func (p *MistralProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements [ai.Provider] by sending a synchronous chat request
// to Mistral's chat completions API and returning the response mapped to the
// generic [ai.ChatResponse] format. It returns an error wrapping
// [ai.ErrMissingCredential] before any network I/O if the API key is unset.
func (p *MistralProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	observer := observability.ObserverFromContext(ctx)

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	if observer != nil {
		observer.Trace(ctx, "Mistral provider preparing request",
			observability.String(observability.AttrLLMProvider, p.Name()),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
		)
	}

	// Guard against missing credentials before making a network call.
	if p.apiKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY is not set: %w", ai.ErrMissingCredential)
	}

	url := p.baseURL + chatCompletionsEndpoint

	mistralReq := requestToMistral(request, model)

	httpResponse, resp, err := utils.DoPostSync[chatCompletionResponse](
		ctx,
		p.client,
		url,
		p.apiKey,
		mistralReq,
	)
	if err != nil {
		if observer != nil {
			observer.Trace(ctx, "HTTP request failed", observability.Error(err))
		}
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Mistral API: %s", httpResponse.Status)
	}

	result := mistralToGeneric(*resp)

	// Mistral echoes the model name; fall back to the request model when absent
	// so callers always have a non-empty Model field.
	if result.Model == "" {
		result.Model = model
	}

	if observer != nil {
		observer.Debug(ctx, "Mistral response received",
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
		)
	}

	return result, nil
}

package anthropic

/*
	MESSAGES API - INPUT
*/

// anthropicRequest represents the /v1/messages request format.
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"` // Required by the API on every request
	Temperature *float64           `json:"temperature,omitempty"`
	TopP        *float64           `json:"top_p,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

/*
	MESSAGES API - OUTPUT
*/

// anthropicResponse represents the /v1/messages response format.
type anthropicResponse struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"` // "message" or "error"
	Role       string                  `json:"role"`
	Model      string                  `json:"model"`
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason,omitempty"`
	Usage      *anthropicUsage         `json:"usage,omitempty"`
	Error      *anthropicError         `json:"error,omitempty"`
}

// anthropicContentBlock is one element of the response content array.
// Only text blocks are consumed; other block types are skipped.
type anthropicContentBlock struct {
	Type string `json:"type"` // "text", "thinking", ...
	Text string `json:"text,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// anthropicError carries a provider-reported fault delivered with a 2xx-adjacent
// body shape (type == "error").
type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

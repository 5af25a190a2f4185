package anthropic

import (
	"strings"

	"github.com/leofalp/brain/providers/ai"
)

// requestToAnthropic converts an ai.ChatRequest into an anthropicRequest ready
// to POST to Anthropic's Messages API. System messages are not allowed in the
// messages array; the system prompt travels in the dedicated field.
// Anthropic requires max_tokens, so a default is applied when absent.
func requestToAnthropic(request ai.ChatRequest, model string) anthropicRequest {
	messages := make([]anthropicMessage, 0, len(request.Messages))
	for _, msg := range request.Messages {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, anthropicMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	req := anthropicRequest{
		Model:     model,
		Messages:  messages,
		System:    request.SystemPrompt,
		MaxTokens: defaultMaxTokens,
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
		if cfg.MaxTokens > 0 {
			req.MaxTokens = cfg.MaxTokens
		}
	}

	return req
}

// anthropicToGeneric converts a Messages API response to the provider-agnostic
// format. Text content blocks are concatenated; non-text blocks are skipped.
func anthropicToGeneric(resp anthropicResponse) *ai.ChatResponse {
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	result := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Content:      sb.String(),
		FinishReason: resp.StopReason,
	}

	if resp.Usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		}
	}

	return result
}

package mistral

import "github.com/leofalp/brain/providers/ai"

// requestToMistral converts an ai.ChatRequest into the chat-completions wire
// format. The system prompt, when present, becomes the first message; the
// GenerationConfig fields are optional and omitted from the payload when zero.
func requestToMistral(request ai.ChatRequest, model string) chatCompletionRequest {
	messages := make([]chatMessage, 0, len(request.Messages)+1)

	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		messages = append(messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	req := chatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
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
			maxTokens := cfg.MaxTokens
			req.MaxTokens = &maxTokens
		}
		if cfg.FrequencyPenalty != 0 {
			fp := float64(cfg.FrequencyPenalty)
			req.FrequencyPenalty = &fp
		}
		if cfg.PresencePenalty != 0 {
			pp := float64(cfg.PresencePenalty)
			req.PresencePenalty = &pp
		}
	}

	return req
}

// mistralToGeneric converts a chat-completions response to the
// provider-agnostic format. Only the first choice is considered; the API
// returns exactly one unless n > 1 is requested, which this client never does.
func mistralToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ID,
		Model: resp.Model,
	}

	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		result.Content = choice.Message.Content
		result.FinishReason = choice.FinishReason
	}

	if resp.Usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return result
}

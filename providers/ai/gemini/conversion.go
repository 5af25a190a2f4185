package gemini

import (
	"strings"

	"github.com/leofalp/brain/providers/ai"
)

// requestToGemini converts an ai.ChatRequest into Gemini's generateContent
// wire format. Gemini uses "model" instead of "assistant" for the responder
// role and carries the system prompt in a dedicated systemInstruction field.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	contents := make([]content, 0, len(request.Messages))

	for _, msg := range request.Messages {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}

	req := generateContentRequest{
		Contents: contents,
	}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	if cfg := request.GenerationConfig; cfg != nil {
		genCfg := &generationConfig{}

		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			genCfg.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			genCfg.TopP = &topP
		}
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			genCfg.MaxOutputTokens = &maxTokens
		}
		if cfg.PresencePenalty != 0 {
			pp := float64(cfg.PresencePenalty)
			genCfg.PresencePenalty = &pp
		}
		if cfg.FrequencyPenalty != 0 {
			fp := float64(cfg.FrequencyPenalty)
			genCfg.FrequencyPenalty = &fp
		}

		req.GenerationConfig = genCfg
	}

	return req
}

// geminiToGeneric converts a generateContent response to the provider-agnostic
// format. Only the first candidate is considered; candidateCount is never set
// above one by this client. Multi-part candidates are concatenated.
func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ResponseID,
		Model: resp.ModelVersion,
	}

	if len(resp.Candidates) > 0 {
		c := resp.Candidates[0]
		result.FinishReason = c.FinishReason

		if c.Content != nil {
			var sb strings.Builder
			for _, p := range c.Content.Parts {
				sb.WriteString(p.Text)
			}
			result.Content = sb.String()
		}
	}

	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result
}

// Package mistral implements [ai.Provider] for Mistral's chat completions API,
// which follows the OpenAI chat-completions wire format. The main entry point
// is [New], which reads MISTRAL_API_KEY and MISTRAL_API_BASE_URL from the
// environment.
package mistral

// Package anthropic implements [ai.Provider] for Anthropic's Messages API.
// Its provider identifier is "claude". The main entry point is [New], which
// reads ANTHROPIC_API_KEY and ANTHROPIC_API_BASE_URL from the environment.
package anthropic

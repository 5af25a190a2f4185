package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "mistral", "claude")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "mistral-large-latest")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"
)

// --- Token Usage Attributes ---

const (
	// AttrLLMTokensPrompt is the number of prompt tokens
	AttrLLMTokensPrompt = "llm.tokens.prompt" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensCompletion is the number of completion tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Dispatch Attributes ---

const (
	// AttrDispatchID is the correlation id shared by all calls of one fan-out
	AttrDispatchID = "dispatch.id"

	// AttrDispatchCalls is the number of calls in a fan-out
	AttrDispatchCalls = "dispatch.calls"

	// AttrDispatchSucceeded is the number of successful calls in a fan-out
	AttrDispatchSucceeded = "dispatch.succeeded"

	// AttrDispatchFailed is the number of failed calls in a fan-out
	AttrDispatchFailed = "dispatch.failed"

	// AttrDispatchFailureKind is the classified failure kind for one call
	AttrDispatchFailureKind = "dispatch.failure_kind"

	// AttrDispatchDuration is the wall-clock duration of a call or fan-out
	AttrDispatchDuration = "dispatch.duration"
)

// --- Mode & History Attributes ---

const (
	// AttrMode is the orchestration mode ("single", "deep", "code")
	AttrMode = "mode"

	// AttrThread is the conversation thread name
	AttrThread = "history.thread"

	// AttrHistoryTurns is the number of turns in a thread after an append
	AttrHistoryTurns = "history.turns"

	// AttrHistoryEvicted is the number of turns evicted by FIFO truncation
	AttrHistoryEvicted = "history.evicted"
)

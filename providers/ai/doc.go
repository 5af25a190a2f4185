// Package ai defines the provider-agnostic chat types and the [Provider]
// interface that every LLM backend adapter implements. Concrete adapters live
// in the subpackages mistral, gemini, and anthropic; each maps the generic
// [ChatRequest]/[ChatResponse] pair onto its provider's wire format.
//
// Adapters are deliberately thin: one synchronous request, no retries, and a
// credential guard ([ErrMissingCredential]) that fires before any network I/O.
// Everything above this boundary (fan-out, timeouts, failure classification)
// belongs to the orchestration layer in core/dispatch.
package ai

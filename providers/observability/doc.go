// Package observability defines the [Observer] structured-logging interface
// used across the orchestration core and the provider adapters, typed
// [Attribute] constructors, semantic-convention attribute names, and context
// helpers for propagating an observer down the call stack.
//
// Components receive the observer through context ([ObserverFromContext]) so
// that deep call sites can log without threading a logger through every
// constructor. A nil observer is always valid and means "no logging".
// The bundled slog-backed implementation lives in the subpackage
// [github.com/leofalp/brain/providers/observability/slogobs].
package observability

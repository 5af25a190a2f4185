// Package brain is the top-level mode controller of the orchestration core.
// It maps a [Request]'s mode onto a provider call set, runs the fan-out
// through core/dispatch, consolidates deep-mode results through
// core/synthesis, and records completed cycles in the history store. Failed
// cycles surface a classified error and record nothing.
package brain

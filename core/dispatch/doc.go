// Package dispatch implements the concurrent fan-out of chat calls over
// heterogeneous LLM providers. A [Dispatcher] launches every [Call] in
// parallel, bounds each one with a per-call timeout, and joins them all before
// returning an [Outcome] that records every call's fate in call order. Adapter
// failures are captured as classified [Failure] values, never raised: the
// dispatcher itself cannot fail merely because some calls did.
package dispatch

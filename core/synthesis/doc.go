// Package synthesis consolidates the successful results of a multi-provider
// fan-out into one answer via a single additional call to a designated
// synthesis provider. Failed results never reach the synthesis prompt, and an
// outcome with zero successes short-circuits to [ErrNoSuccessfulResponses]
// without spending a provider call.
package synthesis

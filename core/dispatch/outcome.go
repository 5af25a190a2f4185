package dispatch

import "github.com/leofalp/brain/providers/ai"

// FailureKind classifies why a provider call produced no usable content.
type FailureKind string

const (
	// FailureMissingCredential: no API key configured for the provider;
	// detected before any network I/O.
	FailureMissingCredential FailureKind = "missing_credential"

	// FailureTimeout: the call exceeded the per-call timeout.
	FailureTimeout FailureKind = "timeout"

	// FailureProviderError: transport fault, malformed response, or a
	// provider-reported error.
	FailureProviderError FailureKind = "provider_error"

	// FailureNoSuccessfulResponses: a synthesis was requested over an outcome
	// with zero successful results.
	FailureNoSuccessfulResponses FailureKind = "no_successful_responses"

	// FailureFatal: unexpected internal fault (recovered panic).
	FailureFatal FailureKind = "fatal"
)

// Failure describes a classified provider-call failure.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Error implements the error interface so a Failure can be propagated upward
// directly where a plain error is expected.
func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// Result records the fate of exactly one provider call. Failure is nil on
// success and non-nil on failure; Content/Usage are meaningful only when
// Failure is nil. Empty Content with a nil Failure is a valid success.
type Result struct {
	Provider string
	Model    string
	Content  string
	Usage    *ai.Usage
	Failure  *Failure
}

// Ok reports whether the call succeeded.
func (r Result) Ok() bool {
	return r.Failure == nil
}

// Outcome is the complete record of one fan-out: one [Result] per call, in
// call order regardless of completion order, plus a correlation ID shared by
// all log events of the run.
type Outcome struct {
	ID      string
	Results []Result
}

// Succeeded returns the successful results, preserving call order.
func (o Outcome) Succeeded() []Result {
	var ok []Result
	for _, r := range o.Results {
		if r.Ok() {
			ok = append(ok, r)
		}
	}
	return ok
}

// Failed returns the failed results, preserving call order.
func (o Outcome) Failed() []Result {
	var failed []Result
	for _, r := range o.Results {
		if !r.Ok() {
			failed = append(failed, r)
		}
	}
	return failed
}

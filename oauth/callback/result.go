package callback

import (
	"context"
	"errors"

	"github.com/revstack/session/oauth"
)

// Phase enumerates the states of a single completion run.
type Phase int

const (
	// PhasePending is the initial state while parsing and exchange are in
	// flight.
	PhasePending Phase = iota

	// PhaseSuccess means the pair was exchanged; ReturnTo holds the
	// navigation target.
	PhaseSuccess

	// PhaseFailure means the run ended with a terminal error; Reason holds
	// the user-facing explanation.
	PhaseFailure
)

// String implements the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of one completion run. A run produces exactly one
// non-pending Result.
type Result struct {
	Phase    Phase
	ReturnTo string
	Reason   string
}

// SuccessResult returns a success Result for the given navigation target.
func SuccessResult(returnTo string) Result {
	return Result{Phase: PhaseSuccess, ReturnTo: returnTo}
}

// FailureResult returns a failure Result carrying the user-facing reason.
func FailureResult(reason string) Result {
	return Result{Phase: PhaseFailure, Reason: reason}
}

// Complete runs a whole completion flow against a raw redirect URL: parse,
// exchange, result. It is the transport-free counterpart of Completion, for
// surfaces where the full redirect URL (fragment included) is available, such
// as custom-scheme handlers in desktop builds. Exactly one Exchange call is
// made per run, and only when a complete pair was extracted. A failed
// exchange's message is used verbatim as the failure reason.
func Complete(ctx context.Context, e oauth.Exchanger, rawURL string) Result {
	if e == nil {
		return FailureResult("no exchanger configured")
	}
	r, err := ParseRedirectURL(rawURL)
	if err != nil {
		if errors.Is(err, oauth.ErrMissingTokens) {
			return FailureResult(oauth.ErrMissingTokens.Error())
		}
		return FailureResult(err.Error())
	}
	if r.ProviderError != nil {
		return FailureResult(oauth.Describe(r.ProviderError.Code, r.ProviderError.Description).Message)
	}
	if err := e.Exchange(ctx, r.Tokens); err != nil {
		return FailureResult(err.Error())
	}
	return SuccessResult(r.ReturnTo)
}

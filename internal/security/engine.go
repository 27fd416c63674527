package security

import "context"

// Reason explains a deny verdict.
type Reason string

const (
	ReasonBot       Reason = "bot"
	ReasonShield    Reason = "shield"
	ReasonRateLimit Reason = "rate_limit"
)

// Fingerprint identifies the requester for decision purposes.
type Fingerprint struct {
	IP        string
	UserAgent string
	Method    string
	Path      string
	RawQuery  string
}

// Verdict is the engine's decision. Reason is only meaningful when Denied.
type Verdict struct {
	Denied bool
	Reason Reason
}

// Engine evaluates one request fingerprint against a tier policy. Checks run
// bot → shield → rate limit; the first deny wins. Enforcement of the verdict
// (block vs log) is the caller's concern, not the engine's.
type Engine interface {
	Evaluate(ctx context.Context, fp Fingerprint, policy Policy) (Verdict, error)
}

type FakeEngine struct {
	EvaluateFn func(ctx context.Context, fp Fingerprint, policy Policy) (Verdict, error)
}

func (f *FakeEngine) Evaluate(ctx context.Context, fp Fingerprint, policy Policy) (Verdict, error) {
	if f.EvaluateFn != nil {
		return f.EvaluateFn(ctx, fp, policy)
	}
	panic("unexpected Evaluate")
}

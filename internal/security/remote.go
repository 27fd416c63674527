package security

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteEngine delegates verdicts to an external decision service over HTTP,
// authenticated with an API key.
type RemoteEngine struct {
	client *resty.Client
}

func NewRemoteEngine(baseURL, apiKey string) *RemoteEngine {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(5 * time.Second)
	return &RemoteEngine{client: client}
}

type decideRequest struct {
	IP         string `json:"ip"`
	UserAgent  string `json:"user_agent"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	RawQuery   string `json:"raw_query,omitempty"`
	Rule       string `json:"rule"`
	IntervalMS int64  `json:"interval_ms"`
	Max        int    `json:"max"`
}

type decideResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func (e *RemoteEngine) Evaluate(ctx context.Context, fp Fingerprint, policy Policy) (Verdict, error) {
	body := decideRequest{
		IP:         fp.IP,
		UserAgent:  fp.UserAgent,
		Method:     fp.Method,
		Path:       fp.Path,
		RawQuery:   fp.RawQuery,
		Rule:       policy.Name,
		IntervalMS: policy.Interval.Milliseconds(),
		Max:        policy.Max,
	}

	var out decideResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/v1/decide")
	if err != nil {
		return Verdict{}, fmt.Errorf("decision request: %w", err)
	}
	if resp.IsError() {
		return Verdict{}, fmt.Errorf("decision service returned %s", resp.Status())
	}

	if out.Allowed {
		return Verdict{}, nil
	}
	reason, err := parseReason(out.Reason)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Denied: true, Reason: reason}, nil
}

func parseReason(s string) (Reason, error) {
	switch Reason(s) {
	case ReasonBot, ReasonShield, ReasonRateLimit:
		return Reason(s), nil
	default:
		return "", fmt.Errorf("decision service returned unknown reason %q", s)
	}
}

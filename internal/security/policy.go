// Package security provides the abuse-decision layer in front of every
// request: role-tiered sliding-window rate limits, bot detection and attack
// shielding, behind a single Engine capability so any concrete decision
// backend can be substituted.
package security

import (
	"fmt"
	"time"

	"userhub/internal/model"
)

// Environment selects the tier table and enforcement strictness.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment maps anything that is not "development" to Production.
func ParseEnvironment(s string) Environment {
	if s == string(Development) {
		return Development
	}
	return Production
}

func (e Environment) IsDevelopment() bool { return e == Development }

// Mode is the enforcement mode for bot and shield signals. Rate limits are
// enforced regardless of mode.
type Mode int

const (
	// ModeDryRun logs denials without blocking.
	ModeDryRun Mode = iota
	// ModeLive blocks denied requests.
	ModeLive
)

// Tier is the request's rate-limit class: guest when no identity could be
// derived, otherwise the identity's role.
type Tier int

const (
	TierGuest Tier = iota
	TierUser
	TierAdmin
)

// TierForRole maps a verified role to its tier. Use TierGuest directly for
// anonymous requests.
func TierForRole(r model.Role) Tier {
	switch r {
	case model.RoleAdmin:
		return TierAdmin
	case model.RoleUser:
		return TierUser
	default:
		return TierGuest
	}
}

func (t Tier) String() string {
	switch t {
	case TierAdmin:
		return "admin"
	case TierUser:
		return "user"
	default:
		return "guest"
	}
}

func (t Tier) title() string {
	switch t {
	case TierAdmin:
		return "Admin"
	case TierUser:
		return "User"
	default:
		return "Guest"
	}
}

// Policy is the per-(tier, environment) rate-limiting record. Name keys the
// sliding window so each tier counts separately.
type Policy struct {
	Name     string
	Interval time.Duration
	Max      int
	Mode     Mode
}

// Policy returns the tier's policy. Development allows more requests and runs
// bot/shield checks in dry-run mode; production is tighter and enforcing.
func (t Tier) Policy(env Environment) Policy {
	p := Policy{Name: t.String() + "-rate-limit", Interval: time.Minute, Mode: ModeLive}
	if env.IsDevelopment() {
		p.Mode = ModeDryRun
		switch t {
		case TierAdmin:
			p.Max = 100
		case TierUser:
			p.Max = 50
		default:
			p.Max = 25
		}
		return p
	}
	switch t {
	case TierAdmin:
		p.Max = 20
	case TierUser:
		p.Max = 10
	default:
		p.Max = 5
	}
	return p
}

// LimitMessage is the client-facing 429 message for this tier's policy.
func (t Tier) LimitMessage(p Policy) string {
	return fmt.Sprintf("%s request limit exceeded (%d per %s). Slow down.",
		t.title(), p.Max, intervalName(p.Interval))
}

func intervalName(d time.Duration) string {
	switch d {
	case time.Minute:
		return "minute"
	case time.Second:
		return "second"
	case time.Hour:
		return "hour"
	default:
		return d.String()
	}
}

package middleware

import (
	"net/http"
	"strconv"

	"userhub/internal/api"
	"userhub/internal/audit"
	"userhub/internal/metrics"
	"userhub/internal/security"
	"userhub/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// verifyToken is overridable in tests.
var verifyToken = service.VerifyAccessToken

// Secure runs every request through the abuse-decision engine before anything
// else. The identity peek below is best-effort only: it picks the rate tier
// and never rejects a request, so endpoints that need authentication still go
// through RequireAuth afterwards.
//
// An engine failure fails open in development (request proceeds with a
// warning) and fails closed in production (500). Keep that asymmetry.
func Secure(engine security.Engine, env security.Environment, rec *audit.Recorder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tier := peekTier(c)
			policy := tier.Policy(env)

			req := c.Request()
			fp := security.Fingerprint{
				IP:        c.RealIP(),
				UserAgent: req.UserAgent(),
				Method:    req.Method,
				Path:      req.URL.Path,
				RawQuery:  req.URL.RawQuery,
			}

			verdict, err := engine.Evaluate(req.Context(), fp, policy)
			if err != nil {
				if env.IsDevelopment() {
					metrics.GuardErrorsTotal.WithLabelValues("fail_open").Inc()
					log.Warn().Err(err).Msg("security engine error, bypassing in development")
					return next(c)
				}
				metrics.GuardErrorsTotal.WithLabelValues("fail_closed").Inc()
				log.Error().Err(err).Msg("security engine error")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
					Error:   "Internal server error",
					Message: "Something went wrong with security middleware",
				})
			}
			if !verdict.Denied {
				return next(c)
			}

			enforced := policy.Mode == security.ModeLive ||
				verdict.Reason == security.ReasonRateLimit
			metrics.SecurityDenialsTotal.
				WithLabelValues(string(verdict.Reason), tier.String(), strconv.FormatBool(enforced)).
				Inc()
			rec.Submit(audit.Event{
				Kind:      eventKind(verdict.Reason),
				IP:        fp.IP,
				UserAgent: fp.UserAgent,
				Method:    fp.Method,
				Path:      fp.Path,
				Tier:      tier.String(),
				Blocked:   enforced,
			})

			switch verdict.Reason {
			case security.ReasonBot:
				if !enforced {
					return next(c)
				}
				return c.JSON(http.StatusForbidden, api.ErrorResponse{
					Error:   "Forbidden",
					Message: "Automated requests are not allowed.",
				})
			case security.ReasonShield:
				if !enforced {
					return next(c)
				}
				return c.JSON(http.StatusForbidden, api.ErrorResponse{
					Error:   "Forbidden",
					Message: "Request blocked by security policy.",
				})
			default:
				// Rate limits bite even when bot/shield run dry.
				return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{
					Error:   "Too Many Requests",
					Message: tier.LimitMessage(policy),
				})
			}
		}
	}
}

func peekTier(c echo.Context) security.Tier {
	cookie, err := c.Cookie(service.TokenCookieName)
	if err != nil || cookie.Value == "" {
		return security.TierGuest
	}
	claims, err := verifyToken(cookie.Value)
	if err != nil {
		return security.TierGuest
	}
	return security.TierForRole(claims.Role)
}

func eventKind(r security.Reason) string {
	switch r {
	case security.ReasonBot:
		return "bot_detected"
	case security.ReasonShield:
		return "shield_triggered"
	default:
		return "rate_limited"
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"userhub/internal/audit"
	"userhub/internal/security"
	"userhub/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func restoreVerify() { verifyToken = service.VerifyAccessToken }

func newSecureContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func runSecure(t *testing.T, engine security.Engine, env security.Environment, ctx echo.Context) bool {
	t.Helper()
	rec := audit.NewRecorder(1, zerolog.Nop())
	defer rec.Stop()

	called := false
	err := Secure(engine, env, rec, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(ctx)
	require.NoError(t, err)
	return called
}

func deniedEngine(reason security.Reason) *security.FakeEngine {
	return &security.FakeEngine{
		EvaluateFn: func(context.Context, security.Fingerprint, security.Policy) (security.Verdict, error) {
			return security.Verdict{Denied: true, Reason: reason}, nil
		},
	}
}

func TestSecureAllows(t *testing.T) {
	engine := &security.FakeEngine{
		EvaluateFn: func(_ context.Context, fp security.Fingerprint, policy security.Policy) (security.Verdict, error) {
			require.Equal(t, "GET", fp.Method)
			require.Equal(t, "/users", fp.Path)
			// No identity: guest tier in production.
			require.Equal(t, 5, policy.Max)
			return security.Verdict{}, nil
		},
	}
	ctx, _ := newSecureContext(http.MethodGet, "/users")
	require.True(t, runSecure(t, engine, security.Production, ctx))
}

func TestSecureBotAndShield(t *testing.T) {
	t.Run("bot enforced in production", func(t *testing.T) {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		called := runSecure(t, deniedEngine(security.ReasonBot), security.Production, ctx)
		require.False(t, called)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Automated requests are not allowed.")
	})

	t.Run("bot logged but allowed in development", func(t *testing.T) {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		called := runSecure(t, deniedEngine(security.ReasonBot), security.Development, ctx)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("shield enforced in production", func(t *testing.T) {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		called := runSecure(t, deniedEngine(security.ReasonShield), security.Production, ctx)
		require.False(t, called)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Request blocked by security policy.")
	})

	t.Run("shield logged but allowed in development", func(t *testing.T) {
		ctx, _ := newSecureContext(http.MethodGet, "/users")
		require.True(t, runSecure(t, deniedEngine(security.ReasonShield), security.Development, ctx))
	})
}

func TestSecureRateLimitAlwaysEnforced(t *testing.T) {
	for _, env := range []security.Environment{security.Development, security.Production} {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		called := runSecure(t, deniedEngine(security.ReasonRateLimit), env, ctx)
		require.False(t, called, "env %s", env)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Contains(t, rec.Body.String(), "Guest request limit exceeded")
		require.Contains(t, rec.Body.String(), "Slow down.")
	}
}

func TestSecureEngineFailure(t *testing.T) {
	failing := &security.FakeEngine{
		EvaluateFn: func(context.Context, security.Fingerprint, security.Policy) (security.Verdict, error) {
			return security.Verdict{}, errors.New("engine unreachable")
		},
	}

	t.Run("fail open in development", func(t *testing.T) {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		require.True(t, runSecure(t, failing, security.Development, ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("fail closed in production", func(t *testing.T) {
		ctx, rec := newSecureContext(http.MethodGet, "/users")
		require.False(t, runSecure(t, failing, security.Production, ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "security middleware")
	})
}

func TestSecureTierPeek(t *testing.T) {
	t.Cleanup(restoreVerify)
	verifyToken = func(string) (*service.CustomClaims, error) {
		return &service.CustomClaims{UserID: 1, Role: "admin"}, nil
	}

	var gotMax int
	engine := &security.FakeEngine{
		EvaluateFn: func(_ context.Context, _ security.Fingerprint, policy security.Policy) (security.Verdict, error) {
			gotMax = policy.Max
			return security.Verdict{}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: service.TokenCookieName, Value: "tok"})
	ctx := e.NewContext(req, httptest.NewRecorder())
	require.True(t, runSecure(t, engine, security.Production, ctx))
	require.Equal(t, 20, gotMax)

	// Invalid token degrades to guest rather than rejecting.
	verifyToken = func(string) (*service.CustomClaims, error) { return nil, errors.New("bad") }
	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), httptest.NewRecorder())
	require.True(t, runSecure(t, engine, security.Production, ctx))
	require.Equal(t, 5, gotMax)
}

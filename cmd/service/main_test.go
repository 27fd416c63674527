package main

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/security"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	newEngine = buildEngine
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

func allowAllEngine() security.Engine {
	return &security.FakeEngine{
		EvaluateFn: func(context.Context, security.Fingerprint, security.Policy) (security.Verdict, error) {
			return security.Verdict{}, nil
		},
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

// Setup registers prometheus collectors, so only one test may drive run()
// all the way to the router.
func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "postgres://test", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	newEngine = func(context.Context, *config.Config) (security.Engine, func(), error) {
		called["engine"] = true
		return allowAllEngine(), func() { called["engineClose"] = true }, nil
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":8080", addr)
		return nil
	}

	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", "secret")

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["migrate"])
	require.True(t, called["engine"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["engineClose"])
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	// Required variables missing.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	require.Error(t, run())

	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", "secret")

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newEngine = func(context.Context, *config.Config) (security.Engine, func(), error) {
		return nil, nil, errors.New("redis down")
	}
	require.Error(t, run())
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func(context.Context) (*config.Config, error) { return nil, errors.New("bad config") }
	main()
	require.Equal(t, 1, exitCode)
}

func TestBuildEngineRemote(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.EngineURL = "https://decisions.example.com"
	cfg.Security.APIKey = "key"
	engine, closeFn, err := buildEngine(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, engine)
	require.IsType(t, &security.RemoteEngine{}, engine)
	closeFn()
}

// @title        UserHub API
// @version      1.0
// @description  User management HTTP API with token authentication and an
// @description  abuse-decision guard in front of every request.
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in   cookie
// @name token
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"userhub/internal/audit"
	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/logger"
	"userhub/internal/router"
	"userhub/internal/security"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	_ "userhub/docs"

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	newEngine       = buildEngine
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// buildEngine picks the decision engine: remote when SECURITY_ENGINE_URL is
// set, otherwise local decisions against Redis.
func buildEngine(ctx context.Context, cfg *config.Config) (security.Engine, func(), error) {
	if cfg.Security.EngineURL != "" {
		return security.NewRemoteEngine(cfg.Security.EngineURL, cfg.Security.APIKey), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return security.NewRedisEngine(rdb, "userhub"), func() { _ = rdb.Close() }, nil
}

func run() error {
	ctx := context.Background()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logg := logger.New(cfg.LogLevel, cfg.IsDevelopment(), nil)

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	engine, closeEngine, err := newEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("security engine: %w", err)
	}
	defer closeEngine()

	rec := audit.NewRecorder(cfg.AuditWorkers, logg)
	defer rec.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	router.Setup(e, db, engine, security.ParseEnvironment(cfg.Env), rec, cfg.JWTTTL, logg)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	return startServer(e, ":"+cfg.Port)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}

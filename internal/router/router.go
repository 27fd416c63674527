package router

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"userhub/internal/audit"
	"userhub/internal/database"
	"userhub/internal/handler"
	"userhub/internal/handler/auth"
	"userhub/internal/handler/users"
	"userhub/internal/middleware"
	"userhub/internal/security"
)

// Setup registers all routes and the middleware chain. The security guard
// runs in front of every endpoint; authentication and authorization are
// route-level.
func Setup(e *echo.Echo, db database.DB, engine security.Engine, env security.Environment, rec *audit.Recorder, ttl time.Duration, log zerolog.Logger) {
	e.Use(echoprometheus.NewMiddleware("userhub"))
	e.GET("/metrics", echoprometheus.NewHandler())

	e.Use(middleware.Secure(engine, env, rec, log))

	e.POST("/auth/sign-up", auth.SignUpHandler(db, ttl, log))
	e.POST("/auth/sign-in", auth.SignInHandler(db, ttl, log))
	e.POST("/auth/sign-out", auth.SignOutHandler())

	// Static segment, so echo matches it ahead of /users/:id.
	e.GET("/users/test-db", handler.TestDatabaseHandler(db, log))

	e.GET("/users", users.ListUsersHandler(db, log))
	e.GET("/users/:id", users.GetUserHandler(db, log))
	e.PUT("/users/:id", users.UpdateUserHandler(db, log), middleware.RequireAuth)
	e.DELETE("/users/:id", users.DeleteUserHandler(db, log), middleware.RequireAdmin)
}

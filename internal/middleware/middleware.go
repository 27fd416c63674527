package middleware

import (
	"net/http"

	"userhub/internal/api"
	"userhub/internal/metrics"
	"userhub/internal/model"
	"userhub/internal/service"

	"github.com/labstack/echo/v4"
)

// ContextUserKey is where RequireAuth stores the verified claims.
const ContextUserKey = "user"

// authFailed is the uniform 401 body. Missing, malformed and expired tokens
// all look the same to the client.
var authFailed = api.ErrorResponse{
	Error:   "Authentication failed",
	Message: "Invalid or expired token",
}

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	cookie, err := c.Cookie(service.TokenCookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized)
	}
	claims, err := service.VerifyAccessToken(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized)
	}
	return claims, nil
}

// RequireAuth verifies the token cookie and stores the identity in the
// context. The failure response never reveals why verification failed.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := extractClaims(c)
		if err != nil {
			metrics.AuthFailuresTotal.Inc()
			return c.JSON(http.StatusUnauthorized, authFailed)
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin layers an admin check on top of RequireAuth. Authentication
// failures stay 401; a valid non-admin identity gets 403 so clients can tell
// "log in" from "not permitted".
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireAuth(func(c echo.Context) error {
		claims := c.Get(ContextUserKey).(*service.CustomClaims)
		if claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{
				Error:   "Access denied",
				Message: "Admin privileges required",
			})
		}
		return next(c)
	})
}

// ClaimsFromContext returns the identity stored by RequireAuth, or nil.
func ClaimsFromContext(c echo.Context) *service.CustomClaims {
	claims, _ := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims
}

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"userhub/internal/api"
	"userhub/internal/database"
	"userhub/internal/store"
	"userhub/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// signInFailed deliberately does not say whether the email exists.
var signInFailed = api.ErrorResponse{
	Error:   "Authentication failed",
	Message: "Invalid email or password",
}

// SignInHandler verifies credentials and sets the token cookie.
// @Summary     Sign in
// @Description Verifies email and password, then sets the token cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.SignInRequest true "Credentials"
// @Success     200 {object} api.SingleUserResponse
// @Failure     400 {object} api.ValidationErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/sign-in [post]
func SignInHandler(db database.DB, ttl time.Duration, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignInRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: []api.FieldError{{Field: "body", Message: "invalid JSON body"}},
			})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: validation.FieldErrors(err),
			})
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := getUserByEmail(c.Request().Context(), db, email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusUnauthorized, signInFailed)
			}
			log.Error().Err(err).Msg("failed to look up user")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to sign in",
			})
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, signInFailed)
		}

		token, err := issueAccessToken(*user, ttl)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue token")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to sign in",
			})
		}
		c.SetCookie(tokenCookie(token, ttl))

		log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("user signed in")
		return c.JSON(http.StatusOK, api.SingleUserResponse{
			Message: "Signed in successfully",
			User:    api.NewUserResponse(user),
		})
	}
}

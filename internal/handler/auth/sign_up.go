package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"userhub/internal/api"
	"userhub/internal/database"
	"userhub/internal/model"
	"userhub/internal/store"
	"userhub/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// SignUpHandler registers a new account and signs it in.
// @Summary     Register a new user
// @Description Creates an account (email is lower-cased) and sets the token cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.SignUpRequest true "Account details"
// @Success     201 {object} api.SingleUserResponse
// @Failure     400 {object} api.ValidationErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/sign-up [post]
func SignUpHandler(db database.DB, ttl time.Duration, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignUpRequest
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

		hash, err := hashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to register user",
			})
		}

		role := model.RoleUser
		if req.Role != "" {
			role = model.Role(req.Role)
		}
		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{
					Error:   "Conflict",
					Message: "Email is already in use",
				})
			}
			log.Error().Err(err).Msg("failed to create user")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to register user",
			})
		}

		token, err := issueAccessToken(*user, ttl)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue token")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to register user",
			})
		}
		c.SetCookie(tokenCookie(token, ttl))

		log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("user registered")
		return c.JSON(http.StatusCreated, api.SingleUserResponse{
			Message: "User registered successfully",
			User:    api.NewUserResponse(user),
		})
	}
}

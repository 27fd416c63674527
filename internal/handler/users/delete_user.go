package users

import (
	"errors"
	"net/http"

	"userhub/internal/api"
	"userhub/internal/database"
	"userhub/internal/middleware"
	"userhub/internal/store"
	"userhub/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// DeleteUserHandler permanently removes a user. The route is admin-only
// (middleware-enforced); the self-delete check happens here because it needs
// the target id.
// @Summary     Delete a user by ID
// @Description Hard-deletes the user and returns its public fields. Admins
// @Description cannot delete their own account.
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} api.DeleteUserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, details := validation.UserID(c.Param("id"))
		if details != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: details,
			})
		}

		claims := middleware.ClaimsFromContext(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{
				Error:   "Authentication required",
				Message: "User not authenticated",
			})
		}

		// Checked before target existence, so deleting yourself is 400 even
		// for ids that are long gone.
		if claims.UserID == id {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Error:   "Invalid operation",
				Message: "Administrators cannot delete their own account",
			})
		}

		log.Info().
			Str("actor_email", claims.Email).
			Int("actor_id", claims.UserID).
			Int("user_id", id).
			Msg("admin deleting user")

		user, err := deleteUser(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, userNotFound)
			}
			log.Error().Err(err).Int("user_id", id).Msg("failed to delete user")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to delete user",
			})
		}

		return c.JSON(http.StatusOK, api.DeleteUserResponse{
			Message: "User deleted successfully",
			DeletedUser: api.DeletedUser{
				ID:    user.ID,
				Email: user.Email,
				Name:  user.Name,
			},
		})
	}
}

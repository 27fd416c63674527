package users

import (
	"errors"
	"net/http"

	"userhub/internal/api"
	"userhub/internal/database"
	"userhub/internal/store"
	"userhub/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var userNotFound = api.ErrorResponse{
	Error:   "User not found",
	Message: "No user found with the provided ID",
}

// GetUserHandler fetches one user by id.
// @Summary     Get a user by ID
// @Description Returns the user with the given numeric ID.
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} api.SingleUserResponse
// @Failure     400 {object} api.ValidationErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, details := validation.UserID(c.Param("id"))
		if details != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: details,
			})
		}

		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, userNotFound)
			}
			log.Error().Err(err).Int("user_id", id).Msg("failed to fetch user")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to fetch user",
			})
		}

		return c.JSON(http.StatusOK, api.SingleUserResponse{
			Message: "User retrieved successfully",
			User:    api.NewUserResponse(user),
		})
	}
}

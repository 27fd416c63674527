package users

import (
	"errors"
	"net/http"

	"userhub/internal/api"
	"userhub/internal/database"
	"userhub/internal/middleware"
	"userhub/internal/model"
	"userhub/internal/store"
	"userhub/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// UpdateUserHandler applies a partial update to one user. A non-admin actor
// may only update their own record, and only an admin may touch the role
// field, own record or not.
// @Summary     Update a user by ID
// @Description Updates the provided fields of the user. Owner or admin only;
// @Description role changes are admin only.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "User ID"
// @Param       body body api.UpdateUserRequest true "Fields to update"
// @Success     200 {object} api.SingleUserResponse
// @Failure     400 {object} api.ValidationErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, details := validation.UserID(c.Param("id"))
		if details != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: details,
			})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: []api.FieldError{{Field: "body", Message: "invalid JSON body"}},
			})
		}
		fields, details := validation.UserUpdate(&req)
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
				Message: "You must be logged in to update user information",
			})
		}
		if claims.UserID != id && claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{
				Error:   "Access denied",
				Message: "You can only update your own information",
			})
		}
		if fields.Role != nil && claims.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{
				Error:   "Access denied",
				Message: "Only administrators can change user roles",
			})
		}

		user, err := updateUser(c.Request().Context(), db, id, fields)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, userNotFound)
			case errors.Is(err, store.ErrEmailTaken):
				return c.JSON(http.StatusConflict, api.ErrorResponse{
					Error:   "Conflict",
					Message: "Email is already in use",
				})
			default:
				log.Error().Err(err).Int("user_id", id).Msg("failed to update user")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
					Error:   "Internal server error",
					Message: "Failed to update user",
				})
			}
		}

		log.Info().Int("user_id", id).Int("actor_id", claims.UserID).Msg("user updated")
		return c.JSON(http.StatusOK, api.SingleUserResponse{
			Message: "User updated successfully",
			User:    api.NewUserResponse(user),
		})
	}
}

package users

import (
	"net/http"

	"userhub/internal/api"
	"userhub/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ListUsersHandler returns every stored user.
// @Summary     List all users
// @Description Returns all users in storage order, with a count.
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UsersResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			log.Error().Err(err).Msg("failed to list users")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to fetch users",
			})
		}

		out := make([]api.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, api.NewUserResponse(&users[i]))
		}
		log.Info().Int("count", len(out)).Msg("retrieved users")
		return c.JSON(http.StatusOK, api.UsersResponse{
			Message: "Successfully retrieved users",
			Users:   out,
			Count:   len(out),
		})
	}
}

package auth

import (
	"net/http"

	"userhub/internal/api"

	"github.com/labstack/echo/v4"
)

// SignOutHandler clears the token cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
// @Summary     Sign out
// @Description Clears the token cookie.
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      /auth/sign-out [post]
func SignOutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(clearedTokenCookie())
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Signed out successfully"})
	}
}

package users

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"userhub/internal/middleware"
	"userhub/internal/model"
	"userhub/internal/service"
	"userhub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var nopLog = zerolog.Nop()

func restore() {
	listUsers = store.ListUsers
	getUserByID = store.GetUserByID
	updateUser = store.UpdateUser
	deleteUser = store.DeleteUser
}

func sampleUser() *model.User {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.User{
		ID:        7,
		Name:      "Ada",
		Email:     "ada@example.com",
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newListCtx(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/users/"+id, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func asActor(c echo.Context, id int, role model.Role) {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{
		UserID: id,
		Email:  "actor@example.com",
		Role:   role,
	})
}

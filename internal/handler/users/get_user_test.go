package users

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"userhub/internal/database"
	"userhub/internal/model"
	"userhub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestGetUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			require.Equal(t, 7, id)
			return sampleUser(), nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "7", "")
		require.NoError(t, GetUserHandler(nil, nopLog)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "User retrieved successfully")
		require.Contains(t, rec.Body.String(), "ada@example.com")
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("non numeric id", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			t.Fatal("store must not be reached for an invalid id")
			return nil, nil
		}
		for _, id := range []string{"abc", "7abc", "1.5", "-1", ""} {
			ctx, rec := newParamCtx(e, http.MethodGet, id, "")
			require.NoError(t, GetUserHandler(nil, nopLog)(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
			require.Contains(t, rec.Body.String(), "Validation failed")
			require.Contains(t, rec.Body.String(), "ID must be a valid number")
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, store.ErrUserNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "404", "")
		require.NoError(t, GetUserHandler(nil, nopLog)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "User not found")
		require.Contains(t, rec.Body.String(), "No user found with the provided ID")
	})

	t.Run("repository error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "7", "")
		require.NoError(t, GetUserHandler(nil, nopLog)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Failed to fetch user")
	})
}

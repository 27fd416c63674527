package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"userhub/internal/database"
	"userhub/internal/model"
	"userhub/internal/store"

	"github.com/stretchr/testify/require"
)

func TestSignInHandler(t *testing.T) {
	e := newEcho()

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			require.Equal(t, "ada@example.com", email)
			return sampleUser(), nil
		}
		comparePassword = func(hash, pw string) error {
			require.Equal(t, "$2a$10$stored-hash", hash)
			require.Equal(t, "hunter22", pw)
			return nil
		}
		issueAccessToken = func(model.User, time.Duration) (string, error) {
			return "signed-token", nil
		}

		ctx, rec := newJSONCtx(e, "/auth/sign-in",
			`{"email":"ADA@example.com","password":"hunter22"}`)
		require.NoError(t, SignInHandler(nil, time.Hour, nopLog)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Signed in successfully")

		ck := findCookie(t, rec)
		require.NotNil(t, ck)
		require.Equal(t, "signed-token", ck.Value)
	})

	t.Run("unknown email and wrong password look identical", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrUserNotFound
		}
		ctx, rec := newJSONCtx(e, "/auth/sign-in",
			`{"email":"nobody@example.com","password":"hunter22"}`)
		require.NoError(t, SignInHandler(nil, time.Hour, nopLog)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		unknownBody := rec.Body.String()

		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return sampleUser(), nil
		}
		comparePassword = func(string, string) error { return errors.New("mismatch") }
		ctx, rec = newJSONCtx(e, "/auth/sign-in",
			`{"email":"ada@example.com","password":"wrong"}`)
		require.NoError(t, SignInHandler(nil, time.Hour, nopLog)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, unknownBody, rec.Body.String())
		require.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, "/auth/sign-in", `{"email":"ada@example.com"}`)
		require.NoError(t, SignInHandler(nil, time.Hour, nopLog)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Validation failed")
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newJSONCtx(e, "/auth/sign-in",
			`{"email":"ada@example.com","password":"hunter22"}`)
		require.NoError(t, SignInHandler(nil, time.Hour, nopLog)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Failed to sign in")
	})
}

func TestSignOutHandler(t *testing.T) {
	e := newEcho()
	ctx, rec := newJSONCtx(e, "/auth/sign-out", "")
	require.NoError(t, SignOutHandler()(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Signed out successfully")

	ck := findCookie(t, rec)
	require.NotNil(t, ck)
	require.Empty(t, ck.Value)
	require.Equal(t, -1, ck.MaxAge)
}

// Package auth holds the handlers that issue and clear the token cookie.
package auth

import (
	"net/http"
	"time"

	"userhub/internal/service"
	"userhub/internal/store"
)

// Indirections replaced in tests.
var (
	hashPassword     = service.HashPassword
	comparePassword  = service.ComparePassword
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

func tokenCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     service.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func clearedTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     service.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

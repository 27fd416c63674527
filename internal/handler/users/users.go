// Package users holds the handlers for the /users endpoints.
package users

import "userhub/internal/store"

// Indirections over the store, replaced in tests.
var (
	listUsers   = store.ListUsers
	getUserByID = store.GetUserByID
	updateUser  = store.UpdateUser
	deleteUser  = store.DeleteUser
)

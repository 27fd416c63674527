package api

import (
	"time"

	"userhub/internal/model"
)

// ErrorResponse is the generic error body: {"error": ..., "message": ...}.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error" example:"User not found"`
	Message string `json:"message,omitempty" example:"No user found with the provided ID"`
}

// FieldError is a single machine-readable validation failure.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"must be a valid email address"`
}

// ValidationErrorResponse carries field-level detail for 400 responses.
// swagger:model api.ValidationErrorResponse
type ValidationErrorResponse struct {
	Error   string       `json:"error" example:"Validation failed"`
	Details []FieldError `json:"details"`
}

// UserResponse is the public shape of a stored user.
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int        `json:"id" example:"1"`
	Name      string     `json:"name" example:"Alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Role      model.Role `json:"role" example:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewUserResponse strips the password hash from a stored user.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersResponse is the list-users body: {"message", "users", "count"}.
// swagger:model api.UsersResponse
type UsersResponse struct {
	Message string         `json:"message" example:"Successfully retrieved users"`
	Users   []UserResponse `json:"users"`
	Count   int            `json:"count" example:"2"`
}

// SingleUserResponse wraps one user with a message.
// swagger:model api.SingleUserResponse
type SingleUserResponse struct {
	Message string       `json:"message" example:"User retrieved successfully"`
	User    UserResponse `json:"user"`
}

// DeletedUser is the reduced record returned after a delete.
type DeletedUser struct {
	ID    int    `json:"id" example:"3"`
	Email string `json:"email" example:"bob@example.com"`
	Name  string `json:"name" example:"Bob"`
}

// DeleteUserResponse is the delete-user body.
// swagger:model api.DeleteUserResponse
type DeleteUserResponse struct {
	Message     string      `json:"message" example:"User deleted successfully"`
	DeletedUser DeletedUser `json:"deletedUser"`
}

// MessageResponse carries a bare message.
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Signed out successfully"`
}

// ProbeResponse is the database connectivity probe body.
// swagger:model api.ProbeResponse
type ProbeResponse struct {
	Message string `json:"message" example:"Database connection successful"`
	Result  int    `json:"result" example:"1"`
}

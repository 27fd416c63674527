package api

// UpdateUserRequest is the partial-update body for PUT /users/:id.
// All fields are optional, but at least one must be present.
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=255" example:"Alice"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"alice@example.com"`
	Role  *string `json:"role,omitempty" validate:"omitempty,oneof=user admin" example:"user"`
}

// SignUpRequest is the body for POST /auth/sign-up.
// swagger:model api.SignUpRequest
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255" example:"Alice"`
	Email    string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6,max=128" example:"hunter22"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin" example:"user"`
}

// SignInRequest is the body for POST /auth/sign-in.
// swagger:model api.SignInRequest
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"hunter22"`
}

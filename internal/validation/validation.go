// Package validation holds the pure request-shape checks. Functions here have
// no side effects; failures come back as (field, message) pairs ready for the
// 400 response body.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"userhub/internal/api"
	"userhub/internal/model"
	"userhub/internal/store"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	digitsRe = regexp.MustCompile(`^\d+$`)
)

// UserID accepts only all-digit strings and converts them to int.
func UserID(raw string) (int, []api.FieldError) {
	if !digitsRe.MatchString(raw) {
		return 0, []api.FieldError{{Field: "id", Message: "ID must be a valid number"}}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, []api.FieldError{{Field: "id", Message: "ID must be a valid number"}}
	}
	return id, nil
}

// UserUpdate normalizes and validates a partial-update body. Name is trimmed,
// email is trimmed and lower-cased. A body with no recognized field is
// rejected.
func UserUpdate(req *api.UpdateUserRequest) (store.UserUpdate, []api.FieldError) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}

	if req.Name == nil && req.Email == nil && req.Role == nil {
		return store.UserUpdate{}, []api.FieldError{
			{Field: "body", Message: "At least one field must be provided for update"},
		}
	}

	// omitempty skips zero values, so a field trimmed down to "" must be
	// caught here.
	if req.Name != nil && *req.Name == "" {
		return store.UserUpdate{}, []api.FieldError{
			{Field: "name", Message: "must be at least 2 characters"},
		}
	}
	if req.Email != nil && *req.Email == "" {
		return store.UserUpdate{}, []api.FieldError{
			{Field: "email", Message: "must be a valid email address"},
		}
	}
	if req.Role != nil && *req.Role == "" {
		return store.UserUpdate{}, []api.FieldError{
			{Field: "role", Message: "must be one of: user, admin"},
		}
	}

	if err := validate.Struct(req); err != nil {
		return store.UserUpdate{}, FieldErrors(err)
	}

	fields := store.UserUpdate{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := model.Role(*req.Role)
		fields.Role = &role
	}
	return fields, nil
}

// FieldErrors translates a validator error into (field, message) pairs.
func FieldErrors(err error) []api.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []api.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]api.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, api.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

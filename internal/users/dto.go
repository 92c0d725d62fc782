package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID           uuid.UUID          `json:"id"`
	Username     string             `json:"username"`
	Role         enums.UserRole     `json:"role"`
	Organization enums.Organization `json:"organization"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CreateUserInput holds creation-time account data. Role and Organization
// fall back to editor/EDSU when absent.
type CreateUserInput struct {
	Username     string
	Password     string
	Role         *enums.UserRole
	Organization *enums.Organization
}

// UpdateUserInput captures partial account mutation.
type UpdateUserInput struct {
	Username     *string
	Password     *string
	Role         *enums.UserRole
	Organization *enums.Organization
}

// Actor identifies who is performing a user operation, for the
// self-or-admin rules.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// FromModel maps a user row into its transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Organization: u.Organization,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

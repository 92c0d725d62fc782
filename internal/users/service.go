package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/auth"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UsernameExists(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes account management operations. List, Create and Delete are
// admin-only; Get and Update allow an account to reach its own row.
type Service interface {
	List(ctx context.Context, actor Actor) ([]UserDTO, error)
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type service struct {
	repo userRepository
}

// NewService builds a user management service.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, actor Actor) ([]UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*UserDTO, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot access another account")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateUserInput) (*UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if input.Organization != nil && !input.Organization.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid organization")
	}

	taken, err := s.repo.UsernameExists(ctx, username, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username already taken")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         enums.UserRoleEditor,
		Organization: enums.OrganizationEDSU,
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Organization != nil {
		user.Organization = *input.Organization
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot update another account")
	}
	// Editors may rename themselves or rotate their password, but only an
	// admin can change role or organization.
	if (input.Role != nil || input.Organization != nil) && !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required to change role or organization")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if input.Organization != nil && !input.Organization.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid organization")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "username cannot be empty")
		}
		taken, err := s.repo.UsernameExists(ctx, username, &id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "username already taken")
		}
		user.Username = username
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Organization != nil {
		user.Organization = *input.Organization
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if actor.ID == id {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/users"
	pkgauth "github.com/edsu-house/edsu-backend/pkg/auth"
	"github.com/edsu-house/edsu-backend/pkg/config"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type credentialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionResult pairs an account with a freshly minted access token.
type SessionResult struct {
	User  users.UserDTO `json:"user"`
	Token string        `json:"token"`
}

// Service handles credential flows: self-registration, login and the
// current-account lookup.
type Service interface {
	Register(ctx context.Context, username, password string) (*SessionResult, error)
	Login(ctx context.Context, username, password string) (*SessionResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

type service struct {
	repo credentialRepository
	jwt  config.JWTConfig
	now  func() time.Time
}

// NewService builds an auth service.
func NewService(repo credentialRepository, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{repo: repo, jwt: jwtCfg, now: time.Now}, nil
}

// Register creates an editor account and signs the caller in.
func (s *service) Register(ctx context.Context, username, password string) (*SessionResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	taken, err := s.repo.UsernameExists(ctx, username, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username already taken")
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         enums.UserRoleEditor,
		Organization: enums.OrganizationEDSU,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return s.session(user)
}

// Login verifies credentials. Unknown usernames and wrong passwords produce
// the same response so the endpoint cannot be used to probe for accounts.
func (s *service) Login(ctx context.Context, username, password string) (*SessionResult, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !pkgauth.VerifyPassword(user.PasswordHash, password) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return s.session(user)
}

// Me returns the account behind a verified token.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) session(user *models.User) (*SessionResult, error) {
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		Organization: user.Organization,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &SessionResult{User: *users.FromModel(user), Token: token}, nil
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/api/middleware"
	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	usersvc "github.com/edsu-house/edsu-backend/internal/users"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

// actorFromRequest builds the acting user identity from the auth context.
func actorFromRequest(r *http.Request) (usersvc.Actor, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return usersvc.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return usersvc.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "role context missing")
	}
	return usersvc.Actor{ID: id, Role: role}, nil
}

type createUserRequest struct {
	Username     string  `json:"username" validate:"required"`
	Password     string  `json:"password" validate:"required"`
	Role         *string `json:"role,omitempty"`
	Organization *string `json:"organization,omitempty"`
}

type updateUserRequest struct {
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
	Role         *string `json:"role,omitempty"`
	Organization *string `json:"organization,omitempty"`
}

func parseRole(raw *string) (*enums.UserRole, error) {
	if raw == nil {
		return nil, nil
	}
	role, err := enums.ParseUserRole(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}
	return &role, nil
}

func parseOrganization(raw *string) (*enums.Organization, error) {
	if raw == nil {
		return nil, nil
	}
	org, err := enums.ParseOrganization(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid organization")
	}
	return &org, nil
}

func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		users, err := svc.List(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetByID(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

func CreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := parseRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		org, err := parseOrganization(payload.Organization)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), actor, usersvc.CreateUserInput{
			Username:     payload.Username,
			Password:     payload.Password,
			Role:         role,
			Organization: org,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := parseRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		org, err := parseOrganization(payload.Organization)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Update(r.Context(), actor, id, usersvc.UpdateUserInput{
			Username:     payload.Username,
			Password:     payload.Password,
			Role:         role,
			Organization: org,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

func DeleteUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	beemsvc "github.com/edsu-house/edsu-backend/internal/beem"
	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

type createBookRequest struct {
	Title       string     `json:"title" validate:"required"`
	Year        *int       `json:"year,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Description *string    `json:"description,omitempty"`
	MediaID     *uuid.UUID `json:"mediaId,omitempty"`
}

type updateBookRequest struct {
	Title       *string            `json:"title,omitempty"`
	Year        *int               `json:"year,omitempty"`
	Author      *string            `json:"author,omitempty"`
	Description *string            `json:"description,omitempty"`
	MediaID     types.NullableUUID `json:"mediaId,omitempty"`
}

func ListBooks(svc beemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetBook(svc beemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CreateBook(svc beemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), beemsvc.CreateBookInput{
			Title:       payload.Title,
			Year:        payload.Year,
			Author:      payload.Author,
			Description: payload.Description,
			MediaID:     payload.MediaID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateBook(svc beemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, beemsvc.UpdateBookInput{
			Title:       payload.Title,
			Year:        payload.Year,
			Author:      payload.Author,
			Description: payload.Description,
			MediaID:     payload.MediaID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteBook(svc beemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

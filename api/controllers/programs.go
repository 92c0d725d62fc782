package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	programsvc "github.com/edsu-house/edsu-backend/internal/programs"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

type createProgramRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description *string     `json:"description,omitempty"`
	StartDate   time.Time   `json:"startDate" validate:"required"`
	EndDate     time.Time   `json:"endDate" validate:"required"`
	MediaIDs    []uuid.UUID `json:"mediaIds,omitempty"`
	ArtworkIDs  []uuid.UUID `json:"artworkIds,omitempty"`
	ArticleIDs  []uuid.UUID `json:"articleIds,omitempty"`
}

type updateProgramRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	MediaIDs    *[]uuid.UUID `json:"mediaIds,omitempty"`
	ArtworkIDs  *[]uuid.UUID `json:"artworkIds,omitempty"`
	ArticleIDs  *[]uuid.UUID `json:"articleIds,omitempty"`
}

func ListPrograms(svc programsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetProgram(svc programsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateProgram(svc programsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProgramRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), programsvc.CreateProgramInput{
			Title:       payload.Title,
			Description: payload.Description,
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			MediaIDs:    payload.MediaIDs,
			ArtworkIDs:  payload.ArtworkIDs,
			ArticleIDs:  payload.ArticleIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateProgram(svc programsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProgramRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, programsvc.UpdateProgramInput{
			Title:       payload.Title,
			Description: payload.Description,
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			MediaIDs:    payload.MediaIDs,
			ArtworkIDs:  payload.ArtworkIDs,
			ArticleIDs:  payload.ArticleIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteProgram(svc programsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

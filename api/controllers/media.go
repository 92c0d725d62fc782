package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	mediasvc "github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

type createMediaRequest struct {
	Title        *string    `json:"title,omitempty"`
	Type         *string    `json:"type,omitempty"`
	URL          string     `json:"url" validate:"required"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	ArtistID     *uuid.UUID `json:"artistId,omitempty"`
	Year         *int       `json:"year,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Placeholders []string   `json:"placeholders,omitempty"`
	IsHero       *bool      `json:"isHero,omitempty"`
}

type updateMediaRequest struct {
	Title        *string            `json:"title,omitempty"`
	Type         *string            `json:"type,omitempty"`
	URL          *string            `json:"url,omitempty"`
	ThumbnailURL *string            `json:"thumbnailUrl,omitempty"`
	ArtistID     types.NullableUUID `json:"artistId,omitempty"`
	Year         *int               `json:"year,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Placeholders *[]string          `json:"placeholders,omitempty"`
	IsHero       *bool              `json:"isHero,omitempty"`
}

type setHeroRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

func parseMediaType(raw *string) (*enums.MediaType, error) {
	if raw == nil {
		return nil, nil
	}
	mt, err := enums.ParseMediaType(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type")
	}
	return &mt, nil
}

func ListMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
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

func CreateMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mt, err := parseMediaType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), mediasvc.CreateMediaInput{
			Title:        payload.Title,
			Type:         mt,
			URL:          payload.URL,
			ThumbnailURL: payload.ThumbnailURL,
			ArtistID:     payload.ArtistID,
			Year:         payload.Year,
			Description:  payload.Description,
			Placeholders: payload.Placeholders,
			IsHero:       payload.IsHero,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mt, err := parseMediaType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, mediasvc.UpdateMediaInput{
			Title:        payload.Title,
			Type:         mt,
			URL:          payload.URL,
			ThumbnailURL: payload.ThumbnailURL,
			ArtistID:     payload.ArtistID,
			Year:         payload.Year,
			Description:  payload.Description,
			Placeholders: payload.Placeholders,
			IsHero:       payload.IsHero,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// SetHeroMedia replaces the hero selection wholesale.
func SetHeroMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setHeroRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetHero(r.Context(), payload.IDs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
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

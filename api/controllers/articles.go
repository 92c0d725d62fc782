package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/api/middleware"
	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	articlesvc "github.com/edsu-house/edsu-backend/internal/articles"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

type createArticleRequest struct {
	Title         string      `json:"title" validate:"required"`
	Content       string      `json:"content" validate:"required"`
	Excerpt       *string     `json:"excerpt,omitempty"`
	CoverMediaID  *uuid.UUID  `json:"coverMediaId,omitempty"`
	CoverImageURL *string     `json:"coverImageUrl,omitempty"`
	MediaIDs      []uuid.UUID `json:"mediaIds,omitempty"`
	ProgramID     *uuid.UUID  `json:"programId,omitempty"`
}

type updateArticleRequest struct {
	Title         *string      `json:"title,omitempty"`
	Content       *string      `json:"content,omitempty"`
	Excerpt       *string      `json:"excerpt,omitempty"`
	CoverMediaID  *uuid.UUID   `json:"coverMediaId,omitempty"`
	CoverImageURL *string      `json:"coverImageUrl,omitempty"`
	MediaIDs      *[]uuid.UUID `json:"mediaIds,omitempty"`
	ProgramID     *uuid.UUID   `json:"programId,omitempty"`
}

func ListArticles(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
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

// CreateArticle records the authenticated editor as the article author.
func CreateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var authorID *uuid.UUID
		if uid, err := uuid.Parse(middleware.UserIDFromContext(r.Context())); err == nil {
			authorID = &uid
		}

		item, err := svc.Create(r.Context(), articlesvc.CreateArticleInput{
			Title:         payload.Title,
			Content:       payload.Content,
			Excerpt:       payload.Excerpt,
			CoverMediaID:  payload.CoverMediaID,
			CoverImageURL: payload.CoverImageURL,
			MediaIDs:      payload.MediaIDs,
			ProgramID:     payload.ProgramID,
			AuthorID:      authorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, articlesvc.UpdateArticleInput{
			Title:         payload.Title,
			Content:       payload.Content,
			Excerpt:       payload.Excerpt,
			CoverMediaID:  payload.CoverMediaID,
			CoverImageURL: payload.CoverImageURL,
			MediaIDs:      payload.MediaIDs,
			ProgramID:     payload.ProgramID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
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

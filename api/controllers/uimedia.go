package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	uimediasvc "github.com/edsu-house/edsu-backend/internal/uimedia"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

// uiMediaMultipartLimit bounds how much of the request body the multipart
// parser buffers in memory before spilling to disk.
const uiMediaMultipartLimit = 12 << 20

type updateUIMediaRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsPublic    *bool     `json:"isPublic,omitempty"`
	LocationIDs *[]string `json:"locationIds,omitempty"`
	Index       *int      `json:"index,omitempty"`
}

func ListUIMedia(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetUIMedia(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
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

// GetUIMediaByLocation resolves the most recent public asset placed at a
// location slot.
func GetUIMediaByLocation(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID := strings.TrimSpace(chi.URLParam(r, "locationId"))
		if locationID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "location id required"))
			return
		}

		index, err := validators.ParseQueryInt(r, "index", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetByLocation(r.Context(), locationID, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// UploadUIMedia accepts a multipart image upload with optional placement
// metadata in the form fields.
func UploadUIMedia(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uiMediaMultipartLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading upload failed"))
			return
		}

		input := uimediasvc.UploadInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
		if v := validators.SanitizeString(r.FormValue("title"), 255); v != "" {
			input.Title = &v
		}
		if v := validators.SanitizeString(r.FormValue("description"), 0); v != "" {
			input.Description = &v
		}
		if v := strings.TrimSpace(r.FormValue("locationIds")); v != "" {
			locations, err := parseLocationIDs(v)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.LocationIDs = locations
		}
		if v := strings.TrimSpace(r.FormValue("index")); v != "" {
			index, err := parseFormInt(v, "index")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Index = &index
		}
		if v := strings.TrimSpace(r.FormValue("isPublic")); v != "" {
			isPublic := v == "true" || v == "1"
			input.IsPublic = &isPublic
		}

		item, err := svc.CreateFromUpload(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func parseFormInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// parseLocationIDs accepts either a JSON array or a comma-separated list.
func parseLocationIDs(raw string) ([]string, error) {
	if strings.HasPrefix(raw, "[") {
		var locations []string
		if err := json.Unmarshal([]byte(raw), &locations); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid locationIds")
		}
		return locations, nil
	}
	parts := strings.Split(raw, ",")
	locations := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}
	return locations, nil
}

func UpdateUIMedia(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUIMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, uimediasvc.UpdateUIMediaInput{
			Title:       payload.Title,
			Description: payload.Description,
			IsPublic:    payload.IsPublic,
			LocationIDs: payload.LocationIDs,
			Index:       payload.Index,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteUIMedia(svc uimediasvc.Service, logg *logger.Logger) http.HandlerFunc {
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

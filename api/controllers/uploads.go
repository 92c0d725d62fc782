package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/edsu-house/edsu-backend/api/responses"
	"github.com/edsu-house/edsu-backend/api/validators"
	uploadsvc "github.com/edsu-house/edsu-backend/internal/uploads"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/logger"
)

// uploadMultipartLimit bounds the in-memory buffer for gallery uploads;
// larger bodies spill to temp files.
const uploadMultipartLimit = 32 << 20

type presignRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType,omitempty"`
}

// UploadMedia stores a multipart file and registers it as a media row.
func UploadMedia(svc uploadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadMultipartLimit); err != nil {
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

		input := uploadsvc.UploadInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
		if v := strings.TrimSpace(r.FormValue("title")); v != "" {
			input.Title = &v
		}

		uploaded, err := svc.Upload(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, uploaded)
	}
}

// PresignUpload hands the client a short-lived PUT URL so large files skip
// the API body limit.
func PresignUpload(svc uploadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload presignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Presign(r.Context(), payload.Filename, payload.ContentType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

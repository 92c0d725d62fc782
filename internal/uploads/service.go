package uploads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/storage/minio"
)

const (
	uploadPrefix  = "media"
	maxUploadSize = 100 << 20 // 100 MiB

	presignTimeout = 8 * time.Second
)

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"video/mp4":       {},
	"video/quicktime": {},
	"application/pdf": {},
}

type objectStorage interface {
	Upload(ctx context.Context, prefix, filename, contentType string, data []byte) (minio.UploadResult, error)
	PresignPut(ctx context.Context, prefix, filename string, expiry time.Duration) (minio.PresignResult, error)
}

type mediaCreator interface {
	Create(ctx context.Context, m *models.Media) error
}

// UploadInput holds one multipart file destined for the media library.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       *string
}

// UploadedMedia is the media row created for a stored upload.
type UploadedMedia struct {
	ID           string          `json:"id"`
	Title        *string         `json:"title"`
	Type         enums.MediaType `json:"type"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Key          string          `json:"key"`
}

// Service stores uploads and hands out presigned upload slots.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadedMedia, error)
	Presign(ctx context.Context, filename, contentType string) (*minio.PresignResult, error)
}

type service struct {
	storage objectStorage
	media   mediaCreator
}

// NewService builds an upload service.
func NewService(storage objectStorage, media mediaCreator) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("object storage required")
	}
	if media == nil {
		return nil, fmt.Errorf("media repository required")
	}
	return &service{storage: storage, media: media}, nil
}

// Upload validates the file, stores it and registers a media row typed from
// the MIME type.
func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadedMedia, error) {
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if len(input.Data) > maxUploadSize {
		return nil, pkgerrors.New(pkgerrors.CodePayloadTooLarge, "file exceeds the 100MB limit")
	}
	if _, ok := allowedMimeTypes[input.ContentType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported file type %q", input.ContentType))
	}

	stored, err := s.storage.Upload(ctx, uploadPrefix, input.Filename, input.ContentType, input.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store upload")
	}

	title := input.Title
	if title == nil && input.Filename != "" {
		name := input.Filename
		title = &name
	}
	row := &models.Media{
		Title:        title,
		Type:         enums.MediaTypeForMime(input.ContentType),
		URL:          stored.URL,
		ThumbnailURL: stored.ThumbnailURL,
	}
	if err := s.media.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register uploaded media")
	}

	return &UploadedMedia{
		ID:           row.ID.String(),
		Title:        row.Title,
		Type:         row.Type,
		URL:          row.URL,
		ThumbnailURL: row.ThumbnailURL,
		Key:          stored.Key,
	}, nil
}

// Presign issues a short-lived direct-upload URL. No media row is created;
// the client registers the object once the upload finishes.
func (s *service) Presign(ctx context.Context, filename, contentType string) (*minio.PresignResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if contentType != "" {
		if _, ok := allowedMimeTypes[contentType]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unsupported file type %q", contentType))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, presignTimeout)
	defer cancel()

	// Zero expiry lets the storage client apply its configured TTL.
	result, err := s.storage.PresignPut(ctx, uploadPrefix, filename, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "presign upload")
	}
	return &result, nil
}

package uimedia

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
	"github.com/edsu-house/edsu-backend/pkg/storage/minio"
)

const (
	uploadPrefix  = "ui-media"
	maxUploadSize = 10 << 20 // 10 MiB
)

type uiMediaRepository interface {
	List(ctx context.Context) ([]models.UIMedia, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.UIMedia, error)
	FindByLocation(ctx context.Context, locationID string, index int) (*models.UIMedia, error)
	Create(ctx context.Context, m *models.UIMedia) error
	Update(ctx context.Context, m *models.UIMedia) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type objectUploader interface {
	Upload(ctx context.Context, prefix, filename, contentType string, data []byte) (minio.UploadResult, error)
	KeyFromURL(publicURL string) string
	Remove(ctx context.Context, key string) error
}

// Service exposes site-asset operations.
type Service interface {
	List(ctx context.Context) ([]UIMediaDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UIMediaDTO, error)
	GetByLocation(ctx context.Context, locationID string, index int) (*UIMediaDTO, error)
	CreateFromUpload(ctx context.Context, input UploadInput) (*UIMediaDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUIMediaInput) (*UIMediaDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    uiMediaRepository
	storage objectUploader
}

// NewService builds a site-asset service.
func NewService(repo uiMediaRepository, storage objectUploader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ui media repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("object storage required")
	}
	return &service{repo: repo, storage: storage}, nil
}

func (s *service) List(ctx context.Context) ([]UIMediaDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ui media")
	}
	dtos := make([]UIMediaDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UIMediaDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ui media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ui media")
	}
	return FromModel(row), nil
}

func (s *service) GetByLocation(ctx context.Context, locationID string, index int) (*UIMediaDTO, error) {
	if strings.TrimSpace(locationID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "locationId is required")
	}
	row, err := s.repo.FindByLocation(ctx, locationID, index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no asset placed at this location")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ui media by location")
	}
	return FromModel(row), nil
}

func (s *service) CreateFromUpload(ctx context.Context, input UploadInput) (*UIMediaDTO, error) {
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if len(input.Data) > maxUploadSize {
		return nil, pkgerrors.New(pkgerrors.CodePayloadTooLarge, "file exceeds the 10MB limit")
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are accepted")
	}

	uploaded, err := s.storage.Upload(ctx, uploadPrefix, input.Filename, input.ContentType, input.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store ui media object")
	}

	title := input.Title
	if title == nil && input.Filename != "" {
		name := input.Filename
		title = &name
	}
	m := &models.UIMedia{
		URL:          uploaded.URL,
		ThumbnailURL: &uploaded.ThumbnailURL,
		Type:         enums.MediaTypeImage,
		Title:        title,
		Description:  input.Description,
		IsPublic:     true,
		LocationIDs:  pq.StringArray(input.LocationIDs),
	}
	if input.Index != nil {
		m.Idx = *input.Index
	}
	if input.IsPublic != nil {
		m.IsPublic = *input.IsPublic
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ui media")
	}
	return FromModel(m), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUIMediaInput) (*UIMediaDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ui media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ui media")
	}

	if input.Title != nil {
		title := *input.Title
		row.Title = &title
	}
	if input.Description != nil {
		desc := *input.Description
		row.Description = &desc
	}
	if input.IsPublic != nil {
		row.IsPublic = *input.IsPublic
	}
	if input.LocationIDs != nil {
		row.LocationIDs = pq.StringArray(append([]string(nil), (*input.LocationIDs)...))
	}
	if input.Index != nil {
		row.Idx = *input.Index
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ui media")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ui media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ui media")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ui media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ui media")
	}

	// Best effort: a dangling object is cleaned up later by the cron sweep.
	if key := s.storage.KeyFromURL(row.URL); key != "" {
		_ = s.storage.Remove(ctx, key)
	}
	return nil
}

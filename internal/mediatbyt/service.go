package mediatbyt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

// MediaTBYTDTO exposes a TokoBuku catalog asset.
type MediaTBYTDTO struct {
	ID           uuid.UUID       `json:"id"`
	URL          string          `json:"url"`
	ThumbnailURL *string         `json:"thumbnailUrl"`
	Type         enums.MediaType `json:"type"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateInput holds creation-time asset data. ThumbnailURL falls back to the
// main URL when absent.
type CreateInput struct {
	URL          string
	ThumbnailURL *string
	Type         *enums.MediaType
	Title        *string
	Description  *string
}

// UpdateInput captures partial asset mutation.
type UpdateInput struct {
	URL          *string
	ThumbnailURL *string
	Type         *enums.MediaType
	Title        *string
	Description  *string
}

// FromModel maps a media_tbyt row into a DTO.
func FromModel(m *models.MediaTBYT) *MediaTBYTDTO {
	if m == nil {
		return nil
	}
	return &MediaTBYTDTO{
		ID:           m.ID,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		Type:         m.Type,
		Title:        m.Title,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type tbytRepository interface {
	List(ctx context.Context) ([]models.MediaTBYT, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaTBYT, error)
	Create(ctx context.Context, m *models.MediaTBYT) error
	Update(ctx context.Context, m *models.MediaTBYT) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes TokoBuku catalog operations.
type Service interface {
	List(ctx context.Context) ([]MediaTBYTDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MediaTBYTDTO, error)
	Create(ctx context.Context, input CreateInput) (*MediaTBYTDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*MediaTBYTDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo tbytRepository
}

// NewService builds a TokoBuku catalog service.
func NewService(repo tbytRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media tbyt repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]MediaTBYTDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media tbyt")
	}
	dtos := make([]MediaTBYTDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MediaTBYTDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media tbyt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media tbyt")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*MediaTBYTDTO, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is required")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}

	m := &models.MediaTBYT{
		URL:         input.URL,
		Type:        enums.MediaTypeImage,
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Type != nil {
		m.Type = *input.Type
	}
	if input.ThumbnailURL != nil {
		m.ThumbnailURL = input.ThumbnailURL
	} else {
		thumb := input.URL
		m.ThumbnailURL = &thumb
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media tbyt")
	}
	return FromModel(m), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*MediaTBYTDTO, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media tbyt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media tbyt")
	}

	if input.URL != nil {
		row.URL = *input.URL
	}
	if input.ThumbnailURL != nil {
		thumb := *input.ThumbnailURL
		row.ThumbnailURL = &thumb
	}
	if input.Type != nil {
		row.Type = *input.Type
	}
	if input.Title != nil {
		title := *input.Title
		row.Title = &title
	}
	if input.Description != nil {
		desc := *input.Description
		row.Description = &desc
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update media tbyt")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media tbyt not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media tbyt")
	}
	return nil
}

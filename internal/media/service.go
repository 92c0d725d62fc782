package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type mediaRepository interface {
	List(ctx context.Context) ([]RowWithArtist, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RowWithArtist, error)
	Create(ctx context.Context, m *models.Media) error
	Update(ctx context.Context, m *models.Media) error
	ReplaceHero(ctx context.Context, ids []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// objectRemover deletes stored objects when their media rows go away.
type objectRemover interface {
	KeyFromURL(publicURL string) string
	Remove(ctx context.Context, key string) error
}

// Service exposes media catalog operations.
type Service interface {
	List(ctx context.Context) ([]MediaDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MediaDTO, error)
	Create(ctx context.Context, input CreateMediaInput) (*MediaDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMediaInput) (*MediaDTO, error)
	SetHero(ctx context.Context, ids []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    mediaRepository
	storage objectRemover
}

// NewService builds a media service. The storage remover is optional; without
// it deletes leave the stored object behind.
func NewService(repo mediaRepository, storage objectRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	return &service{repo: repo, storage: storage}, nil
}

func (s *service) List(ctx context.Context) ([]MediaDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	dtos := make([]MediaDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromRow(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MediaDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	return FromRow(row), nil
}

func (s *service) Create(ctx context.Context, input CreateMediaInput) (*MediaDTO, error) {
	if strings.TrimSpace(input.URL) == "" || strings.TrimSpace(input.ThumbnailURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url and thumbnailUrl are required")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}

	model := input.ToModel()
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media")
	}
	return s.GetByID(ctx, model.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateMediaInput) (*MediaDTO, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	model := row.Media

	if input.Title != nil {
		model.Title = cloneStringPtr(input.Title)
	}
	if input.Type != nil {
		model.Type = *input.Type
	}
	if input.URL != nil {
		model.URL = *input.URL
	}
	if input.ThumbnailURL != nil {
		model.ThumbnailURL = *input.ThumbnailURL
	}
	if input.ArtistID.Valid {
		model.ArtistID = input.ArtistID.Clone().Value
	}
	if input.Year != nil {
		year := *input.Year
		model.Year = &year
	}
	if input.Description != nil {
		model.Description = cloneStringPtr(input.Description)
	}
	if input.Placeholders != nil {
		model.Placeholders = append(model.Placeholders[:0:0], *input.Placeholders...)
	}
	if input.IsHero != nil {
		model.IsHero = *input.IsHero
	}

	if err := s.repo.Update(ctx, &model); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update media")
	}
	return s.GetByID(ctx, model.ID)
}

func (s *service) SetHero(ctx context.Context, ids []uuid.UUID) error {
	if err := s.repo.ReplaceHero(ctx, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace hero media")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media")
	}

	// Best effort: a dangling object is cleaned up later by the cron sweep.
	if s.storage != nil {
		if key := s.storage.KeyFromURL(row.URL); key != "" {
			_ = s.storage.Remove(ctx, key)
		}
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

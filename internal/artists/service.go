package artists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	pkgerrors "github.com/edsu-house/edsu-backend/pkg/errors"
)

type artistRepository interface {
	List(ctx context.Context) ([]RowWithPhoto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RowWithPhoto, error)
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, artist *models.Artist) error
	Update(ctx context.Context, artist *models.Artist) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type artworksRepository interface {
	ListByArtistIDs(ctx context.Context, artistIDs []uuid.UUID) ([]media.RowWithArtist, error)
	CountByArtist(ctx context.Context, artistID uuid.UUID) (int64, error)
}

// Service exposes artist operations.
type Service interface {
	List(ctx context.Context) ([]ArtistDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ArtistDTO, error)
	Create(ctx context.Context, input CreateArtistInput) (*ArtistDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateArtistInput) (*ArtistDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     artistRepository
	artworks artworksRepository
}

// NewService builds an artist service with the provided repositories.
func NewService(repo artistRepository, artworks artworksRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("artist repository required")
	}
	if artworks == nil {
		return nil, fmt.Errorf("artworks repository required")
	}
	return &service{repo: repo, artworks: artworks}, nil
}

// artworksByArtist loads media for all requested artists in one query.
func (s *service) artworksByArtist(ctx context.Context, artistIDs []uuid.UUID) (map[uuid.UUID][]media.MediaDTO, error) {
	grouped := make(map[uuid.UUID][]media.MediaDTO)
	if len(artistIDs) == 0 {
		return grouped, nil
	}

	rows, err := s.artworks.ListByArtistIDs(ctx, artistIDs)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		row := &rows[i]
		if row.ArtistID == nil {
			continue
		}
		grouped[*row.ArtistID] = append(grouped[*row.ArtistID], *media.FromRow(row))
	}
	return grouped, nil
}

func (s *service) List(ctx context.Context) ([]ArtistDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list artists")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	artworks, err := s.artworksByArtist(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load artworks")
	}

	dtos := make([]ArtistDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromRow(&rows[i], artworks[rows[i].ID]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ArtistDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "artist not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load artist")
	}

	artworks, err := s.artworksByArtist(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load artworks")
	}
	return FromRow(row, artworks[row.ID]), nil
}

func (s *service) Create(ctx context.Context, input CreateArtistInput) (*ArtistDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	exists, err := s.repo.NameExists(ctx, name, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check artist name")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "artist with this name already exists")
	}

	artist := &models.Artist{
		Name:         name,
		Description:  input.Description,
		PhotoMediaID: input.PhotoMediaID,
	}
	if err := s.repo.Create(ctx, artist); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create artist")
	}
	return s.GetByID(ctx, artist.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateArtistInput) (*ArtistDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "artist not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load artist")
	}
	artist := row.Artist

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		exists, err := s.repo.NameExists(ctx, name, &id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check artist name")
		}
		if exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "artist with this name already exists")
		}
		artist.Name = name
	}
	if input.Description != nil {
		desc := *input.Description
		artist.Description = &desc
	}
	if input.PhotoMediaID.Valid {
		artist.PhotoMediaID = input.PhotoMediaID.Clone().Value
	}

	if err := s.repo.Update(ctx, &artist); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update artist")
	}
	return s.GetByID(ctx, artist.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.artworks.CountByArtist(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count artworks")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"cannot delete artist with existing artworks; reassign or delete artworks first")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "artist not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete artist")
	}
	return nil
}

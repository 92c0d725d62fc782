package artists

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

// PhotoRef is the resolved portrait media attached to an artist.
type PhotoRef struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	Title        *string   `json:"title"`
}

// ArtistDTO exposes an artist with portrait and batched artworks.
type ArtistDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Photo       *PhotoRef        `json:"photo"`
	Artworks    []media.MediaDTO `json:"artworks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateArtistInput holds creation-time artist data.
type CreateArtistInput struct {
	Name         string
	Description  *string
	PhotoMediaID *uuid.UUID
}

// UpdateArtistInput captures partial artist mutation. PhotoMediaID uses
// explicit-null semantics: null detaches the portrait.
type UpdateArtistInput struct {
	Name         *string
	Description  *string
	PhotoMediaID types.NullableUUID
}

// RowWithPhoto is an artist row joined with its portrait media.
type RowWithPhoto struct {
	models.Artist  `gorm:"embedded"`
	PhotoURL       *string `gorm:"column:photo_url"`
	PhotoThumbnail *string `gorm:"column:photo_thumbnail"`
	PhotoTitle     *string `gorm:"column:photo_title"`
}

// FromRow maps a joined artist row plus its artworks into a DTO.
func FromRow(row *RowWithPhoto, artworks []media.MediaDTO) *ArtistDTO {
	if row == nil {
		return nil
	}
	if artworks == nil {
		artworks = []media.MediaDTO{}
	}

	dto := &ArtistDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Artworks:    artworks,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.PhotoMediaID != nil && row.PhotoURL != nil {
		dto.Photo = &PhotoRef{
			ID:           *row.PhotoMediaID,
			URL:          *row.PhotoURL,
			ThumbnailURL: row.PhotoThumbnail,
			Title:        row.PhotoTitle,
		}
	}

	return dto
}
